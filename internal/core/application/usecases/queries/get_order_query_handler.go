package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// GetOrderQueryHandler reads a single order.
type GetOrderQueryHandler struct {
	finder ports.OrderFinder
	policy services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for get order queries.
func NewGetOrderQueryHandler(finder ports.OrderFinder) GetOrderQueryHandler {
	return GetOrderQueryHandler{finder: finder, policy: services.NewAccessPolicy()}
}

// Handle authorizes the query and reads from the finder.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}
	if err := h.policy.Authorize(services.GetOrder, query.Roles()); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.finder.GetByID(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	return NewOrderResponse(o), nil
}
