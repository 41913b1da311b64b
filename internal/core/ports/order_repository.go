// Package ports defines the contracts between the order service core and its
// infrastructure: order storage, units of work and event publication.
package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderRepository is the write-side view of the order store, bound to a unit of work.
// Changes become visible to readers only when the unit of work commits.
type OrderRepository interface {
	// NextID reserves the next sequential order identifier. The reservation is
	// released if the unit of work rolls back.
	NextID(ctx context.Context) (kernel.OrderID, error)

	// Add stores a new order. The caller guarantees the identifier is unused.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns a private copy of the order, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}

// OrderReader is the read-side view of the order store. Readers receive copies and
// never observe a partially applied unit of work.
type OrderReader interface {
	// Get returns the order, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// ListByCustomer returns the customer's orders, most recently created first.
	// Orders created at the same instant are returned most recently inserted first.
	ListByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// Count returns the number of stored orders.
	Count(ctx context.Context) (int, error)

	// CountByStatus returns the number of stored orders per status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
