// Package handlers implements HTTP handlers for the swap marketplace API.
package handlers

import (
	"log/slog"

	"github.com/bushboy/bookingswap/internal/service"
	"github.com/go-playground/validator/v10"
)

// Handler serves all API endpoints over injected service interfaces
type Handler struct {
	targeting service.Targeter
	accepting service.Accepter
	auctions  service.Auctioneer
	history   service.HistoryReader
	health    HealthChecker
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	targeting service.Targeter,
	accepting service.Accepter,
	auctions service.Auctioneer,
	history service.HistoryReader,
	health HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		targeting: targeting,
		accepting: accepting,
		auctions:  auctions,
		history:   history,
		health:    health,
		validate:  validator.New(),
		logger:    logger,
	}
}
