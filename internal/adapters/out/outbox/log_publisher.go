package outbox

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// LogPublisher writes notifications to the log. It stands in for a broker
// when none is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.NotificationPublisher = (*LogPublisher)(nil)

// NewLogPublisher creates a publisher writing to logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "log_publisher")}
}

// Publish logs each notification at info level.
func (p *LogPublisher) Publish(ctx context.Context, notifications []ports.Notification) error {
	for _, n := range notifications {
		p.logger.InfoContext(ctx, "customer notification",
			"orderId", n.OrderID.String(),
			"customerId", n.CustomerID,
			"kind", string(n.Kind),
			"status", n.Status.String(),
		)
	}
	return nil
}
