package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// GetHealth handles GET /health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.PingContext(pingCtx); err != nil {
		h.logger.Error("health check failed: database unreachable", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
