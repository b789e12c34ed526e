package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderFilter selects orders for listing. Exactly one of CustomerID and
// VendorID is expected; an empty Statuses matches every status.
type OrderFilter struct {
	CustomerID string
	VendorID   string
	Statuses   []order.Status
	Limit      int
	Offset     int
}

// OrderFinder serves the read side. It never takes part in a unit of work.
type OrderFinder interface {
	// GetStatus returns the aggregate status of one order.
	GetStatus(ctx context.Context, id kernel.UUID) (order.Status, error)

	// GetByID returns the complete order.
	GetByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns matching orders, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
