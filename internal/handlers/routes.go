package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bushboy/bookingswap/internal/api"
	"github.com/bushboy/bookingswap/internal/config"
	"github.com/bushboy/bookingswap/internal/db"
	"github.com/bushboy/bookingswap/internal/gateway"
	"github.com/bushboy/bookingswap/internal/metrics"
	"github.com/bushboy/bookingswap/internal/middleware"
	"github.com/bushboy/bookingswap/internal/repository"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the service layer behind the router
type Services struct {
	Targeting service.Targeter
	Accepting service.Accepter
	Auctions  service.Auctioneer
	History   service.HistoryReader
}

// NewServices wires the full service stack from config: gateways, the
// settlement coordinator, and the services the router exposes.
func NewServices(
	database *db.DB,
	cfg *config.Config,
	sink metrics.MetricsSink,
	logger *slog.Logger,
) (*Services, *service.AuctionService) {
	payments := gateway.NewHTTPPaymentGateway(&cfg.Gateways)
	chain := gateway.NewHTTPBlockchainGateway(&cfg.Gateways)
	notifications := gateway.NewLogNotificationGateway(logger)

	settler := service.NewSettlementService(
		database, payments, chain, notifications, sink, logger,
		cfg.Settlement.NotifyTimeout,
	)
	auctions := service.NewAuctionService(database, settler, notifications, sink, logger)

	return &Services{
		Targeting: service.NewTargetingService(database),
		Accepting: service.NewAcceptanceService(database, settler, notifications, sink, logger),
		Auctions:  auctions,
		History:   service.NewHistoryService(database),
	}, auctions
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	svcs *Services,
	registry *prometheus.Registry,
	logger *slog.Logger,
) http.Handler {
	handler := NewHandler(svcs.Targeting, svcs.Accepting, svcs.Auctions, svcs.History, database, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	api.RegisterDocsRoutes(r)
	r.Get("/health", handler.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	idempotencyRepo := repository.NewIdempotencyRepository(database)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth))
		r.Use(middleware.Idempotency(idempotencyRepo, logger))

		r.Post("/targets", handler.CreateTarget)
		r.Post("/targets/{targetId}/accept", handler.AcceptTarget)
		r.Post("/targets/{targetId}/reject", handler.RejectTarget)
		r.Post("/listings/{listingId}/retarget", handler.Retarget)
		r.Post("/auctions/{auctionId}/proposals", handler.SubmitProposal)
		r.Post("/auctions/{auctionId}/winner", handler.SelectWinner)
		r.Get("/history", handler.GetHistory)
	})

	return r
}
