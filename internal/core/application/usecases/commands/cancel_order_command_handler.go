package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders on behalf of customers, vendors,
// customer service and administrators.
//
// CSR and Administrator callers take the privileged path and may cancel any
// order that is neither Delivered nor already Cancelled. Everyone else may
// cancel only while the order is Processing. Line items keep their statuses.
type CancelOrderCommandHandler struct {
	mutation orderMutation
	clock    ports.Clock
	policy   services.AccessPolicy
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for cancel order commands.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock, opts ...Option) CancelOrderCommandHandler {
	o := newHandlerOptions(opts)
	return CancelOrderCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, maxAttempts: o.maxAttempts, logger: o.logger},
		clock:    clock,
		policy:   o.policy,
		notifier: o.notifier,
		logger:   o.logger,
	}
}

// Handle authorizes and cancels the order, then notifies the customer.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(services.CancelOrder, cmd.Roles()); err != nil {
		return nil, err
	}
	privileged := h.policy.IsPrivilegedCanceller(cmd.Roles())

	o, err := h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.Cancel(cmd.Note(), privileged, h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order cancelled",
		"orderId", o.ID().String(),
		"privileged", privileged,
	)
	notify(ctx, h.notifier, h.logger, newNotification(o, ports.OrderCancelled))
	return o, nil
}
