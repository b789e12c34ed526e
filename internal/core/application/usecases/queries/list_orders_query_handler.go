package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ListOrdersQueryHandler serves customer histories and vendor worklists.
type ListOrdersQueryHandler struct {
	finder ports.OrderFinder
	policy services.AccessPolicy
}

// NewListOrdersQueryHandler creates a handler for list orders queries.
func NewListOrdersQueryHandler(finder ports.OrderFinder) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{finder: finder, policy: services.NewAccessPolicy()}
}

// Handle returns matching orders newest first; an empty result is not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(services.ListOrders, query.Roles()); err != nil {
		return nil, err
	}

	orders, err := h.finder.List(ctx, ports.OrderFilter{
		CustomerID: query.CustomerID(),
		VendorID:   query.VendorID(),
		Statuses:   query.Statuses(),
		Limit:      query.Limit(),
		Offset:     query.Offset(),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses, nil
}
