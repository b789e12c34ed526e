// Package ports defines the contracts between the fulfillment core and its
// infrastructure: the order store, read-side finder, clock and notification sink.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is a keyed record store with optimistic replace semantics.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and must not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored order on condition that the stored version is
	// aggregate.Version()-1, i.e. the version the caller loaded before mutating.
	//
	// Returns:
	//   - *errs.ObjectNotFoundError when no order with that ID exists
	//   - *errs.ConcurrencyConflictError when another writer got there first
	//   - *errs.StoreUnavailableError when the backing store fails
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns *errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
