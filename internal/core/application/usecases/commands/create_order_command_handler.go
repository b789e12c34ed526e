package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CreateOrderCommandHandler places new orders in Processing status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.System{})
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	policy     services.AccessPolicy
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// WithMaxAttempts and WithNotifier have no effect on creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock, opts ...Option) CreateOrderCommandHandler {
	o := newHandlerOptions(opts)
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     o.policy,
		logger:     o.logger,
	}
}

// Handle authorizes the caller, builds the order and persists it.
// A new order has no prior version, so it is written exactly once.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(services.CreateOrder, cmd.Roles()); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.LineItems(), cmd.Notes(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order created",
		"orderId", o.ID().String(),
		"customerId", o.CustomerID(),
		"lineItems", len(o.LineItems()),
	)
	return o, nil
}
