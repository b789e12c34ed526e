package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// UpdateOrderCommandHandler replaces items and notes while the order is Processing.
type UpdateOrderCommandHandler struct {
	mutation orderMutation
	clock    ports.Clock
	policy   services.AccessPolicy
}

// NewUpdateOrderCommandHandler creates a handler for update order commands.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock, opts ...Option) UpdateOrderCommandHandler {
	o := newHandlerOptions(opts)
	return UpdateOrderCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, maxAttempts: o.maxAttempts, logger: o.logger},
		clock:    clock,
		policy:   o.policy,
	}
}

// Handle returns the updated order, or:
//   - *errs.ObjectNotFoundError when the order does not exist
//   - *errs.StateIsInvalidError when the order was shipped, delivered or cancelled
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(services.UpdateOrder, cmd.Roles()); err != nil {
		return nil, err
	}

	return h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.Update(cmd.LineItems(), cmd.Notes(), h.clock.Now())
	})
}
