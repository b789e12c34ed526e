package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ShipOrderCommandHandler moves Processing orders to Shipped.
type ShipOrderCommandHandler struct {
	mutation orderMutation
	clock    ports.Clock
	policy   services.AccessPolicy
	logger   *slog.Logger
}

// NewShipOrderCommandHandler creates a handler for ship order commands.
func NewShipOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock, opts ...Option) ShipOrderCommandHandler {
	o := newHandlerOptions(opts)
	return ShipOrderCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, maxAttempts: o.maxAttempts, logger: o.logger},
		clock:    clock,
		policy:   o.policy,
		logger:   o.logger,
	}
}

// Handle authorizes and marks the order shipped.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(services.MarkOrderShipped, cmd.Roles()); err != nil {
		return nil, err
	}

	o, err := h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.Ship(h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order shipped", "orderId", o.ID().String())
	return o, nil
}
