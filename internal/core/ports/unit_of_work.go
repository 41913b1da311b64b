package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the order store.
// At most one unit of work is active at a time; Begin waits for the previous one
// to finish. Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit applies staged changes and publishes the events of touched aggregates.
	// Returns error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback discards staged changes.
	// Returns error if no transaction is active.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
