package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// orderMutation runs the load, evaluate, conditional-write cycle shared by all
// commands that change an existing order.
type orderMutation struct {
	uowFactory  OrderUoWFactory
	maxAttempts int
	logger      *slog.Logger
}

// apply loads the order, hands it to mutate and writes it back. When the write
// loses a version race the whole cycle restarts with a fresh unit of work, so
// mutate always sees the latest committed state. Domain rejections from mutate
// are never retried.
func (m orderMutation) apply(ctx context.Context, id kernel.UUID, mutate func(*order.Order) error) (*order.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		o, err := m.applyOnce(ctx, id, mutate)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, err
		}

		lastErr = err
		m.logger.DebugContext(ctx, "order modified concurrently",
			"orderId", id.String(),
			"attempt", attempt,
			"maxAttempts", m.maxAttempts,
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", m.maxAttempts, lastErr)
}

func (m orderMutation) applyOnce(ctx context.Context, id kernel.UUID, mutate func(*order.Order) error) (*order.Order, error) {
	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = mutate(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// notify hands n to the notifier. Failures are logged and swallowed.
func notify(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, n ports.Notification) {
	if err := notifier.Notify(ctx, n); err != nil {
		logger.WarnContext(ctx, "customer notification dropped",
			"orderId", n.OrderID.String(),
			"kind", string(n.Kind),
			"error", err,
		)
	}
}

func newNotification(o *order.Order, kind ports.NotificationKind) ports.Notification {
	return ports.Notification{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		Kind:       kind,
		Status:     o.Status(),
		Note:       o.CancellationNote(),
		At:         o.UpdatedAt(),
	}
}
