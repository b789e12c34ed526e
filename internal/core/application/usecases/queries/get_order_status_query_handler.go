package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// GetOrderStatusQueryHandler reads order status with no state precondition.
type GetOrderStatusQueryHandler struct {
	finder ports.OrderFinder
	policy services.AccessPolicy
}

// NewGetOrderStatusQueryHandler creates a handler for get order status queries.
func NewGetOrderStatusQueryHandler(finder ports.OrderFinder) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{finder: finder, policy: services.NewAccessPolicy()}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	if err := h.policy.Authorize(services.GetOrderStatus, query.Roles()); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	status, err := h.finder.GetStatus(ctx, query.OrderID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return GetOrderStatusQueryResponse{OrderID: query.OrderID(), Status: status}, nil
}
