package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/bushboy/bookingswap/internal/middleware"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(targeting service.Targeter, accepting service.Accepter, auctions service.Auctioneer, history service.HistoryReader) *Handler {
	return NewHandler(targeting, accepting, auctions, history, nil, testLogger())
}

// authed attaches an authenticated user to the request context the way the
// auth middleware would.
func authed(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

// withChiParam injects a URL parameter the way the chi router would after a
// route match.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func assertErrorCode(t *testing.T, body, code string) {
	t.Helper()
	assert.Contains(t, body, `"error":"`+code+`"`, "error code mismatch")
}
