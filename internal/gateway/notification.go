package gateway

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogNotificationGateway delivers notification events to the structured log.
// It stands in for the real delivery pipeline (email/push) behind the same
// interface; delivery failure never propagates to the caller either way.
type LogNotificationGateway struct {
	logger *slog.Logger
}

// NewLogNotificationGateway creates a log-backed notification gateway
func NewLogNotificationGateway(logger *slog.Logger) *LogNotificationGateway {
	return &LogNotificationGateway{logger: logger}
}

// Emit records the notification event. Never fails.
func (g *LogNotificationGateway) Emit(ctx context.Context, eventType string, userID uuid.UUID, payload map[string]any) {
	if ctx.Err() != nil {
		g.logger.Warn("notification emit skipped, context done",
			"event", eventType,
			"user_id", userID,
		)
		return
	}

	g.logger.Info("notification event",
		"event", eventType,
		"user_id", userID,
		"payload", payload,
	)
}

var _ NotificationGateway = (*LogNotificationGateway)(nil)
