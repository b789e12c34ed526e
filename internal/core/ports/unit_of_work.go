package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command attempt.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one read-modify-write cycle against the order store.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is safe to call after Commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
