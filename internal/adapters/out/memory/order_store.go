// Package memory is an in-process order store with the same optimistic
// replace semantics as the postgres adapter. It backs STORAGE=memory and the
// fulfillment tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderStore keeps order snapshots keyed by ID. It implements
// ports.OrderRepository and ports.OrderFinder and is safe for concurrent use.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]order.Snapshot
}

// NewOrderStore creates an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[uuid.UUID]order.Snapshot)}
}

// Add stores a new order. A duplicate identifier is rejected.
func (s *OrderStore) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := aggregate.ID().Bytes()
	if _, exists := s.orders[key]; exists {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("order %s already exists", aggregate.ID()))
	}
	s.orders[key] = aggregate.Snapshot()
	return nil
}

// Update replaces the stored snapshot when its version is aggregate.Version()-1.
func (s *OrderStore) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := aggregate.ID().Bytes()
	stored, exists := s.orders[key]
	if !exists {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}
	expected := aggregate.Version() - 1
	if stored.Version != expected {
		return errs.NewConcurrencyConflictError("order", aggregate.ID(), expected)
	}
	s.orders[key] = aggregate.Snapshot()
	return nil
}

// Get returns a copy of the stored order.
func (s *OrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	snapshot, exists := s.orders[id.Bytes()]
	s.mu.RUnlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return order.RestoreOrder(snapshot)
}

// GetByID returns a copy of the stored order.
func (s *OrderStore) GetByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return s.Get(ctx, id)
}

// GetStatus returns the stored status of the order.
func (s *OrderStore) GetStatus(ctx context.Context, id kernel.UUID) (order.Status, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return order.Unknown, err
	}
	return o.Status(), nil
}

// List returns copies of the orders matching filter, newest first.
func (s *OrderStore) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	s.mu.RLock()
	matched := make([]order.Snapshot, 0)
	for _, snapshot := range s.orders {
		if matches(snapshot, filter) {
			matched = append(matched, snapshot)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b order.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	matched = page(matched, filter.Offset, filter.Limit)
	result := make([]*order.Order, 0, len(matched))
	for _, snapshot := range matched {
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func matches(s order.Snapshot, filter ports.OrderFilter) bool {
	if filter.CustomerID != "" && s.CustomerID != filter.CustomerID {
		return false
	}
	if filter.VendorID != "" && !slices.ContainsFunc(s.LineItems, func(item order.LineItem) bool {
		return item.IsSuppliedBy(filter.VendorID)
	}) {
		return false
	}
	if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, s.Status) {
		return false
	}
	return true
}

func page(snapshots []order.Snapshot, offset, limit int) []order.Snapshot {
	if offset >= len(snapshots) {
		return nil
	}
	if offset > 0 {
		snapshots = snapshots[offset:]
	}
	if limit > 0 && limit < len(snapshots) {
		snapshots = snapshots[:limit]
	}
	return snapshots
}
