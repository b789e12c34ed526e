package memory

import (
	"context"
	"errors"

	"marketplace/internal/core/ports"
)

var (
	ErrTransactionAlreadyStarted = errors.New("transaction already started")
	ErrNoActiveTransaction       = errors.New("no active transaction")
)

// UnitOfWork scopes one command attempt over an OrderStore. Writes reach the
// store as soon as the repository accepts them; Commit and Rollback only end
// the unit of work.
type UnitOfWork struct {
	store  *OrderStore
	active bool
}

// NewUnitOfWork creates a unit of work over store.
func NewUnitOfWork(store *OrderStore) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Begin starts the unit of work.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return ErrTransactionAlreadyStarted
	}
	u.active = true
	return nil
}

// Commit ends the unit of work.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	return nil
}

// Rollback is a no-op once the unit of work has ended.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.active = false
	return nil
}

// OrderRepository returns the store itself.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return u.store
}

// UnitOfWorkFactory creates units of work over one shared store.
type UnitOfWorkFactory struct {
	store *OrderStore
}

// NewUnitOfWorkFactory creates a factory sharing store across units of work.
func NewUnitOfWorkFactory(store *OrderStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a new unit of work over the shared store.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}
