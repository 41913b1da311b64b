// Package memory keeps orders in process memory for the lifetime of the service.
//
// Store is the single source of truth. Reads go straight to the store under a
// shared lock and always return private copies. Writes go through a UnitOfWork,
// which holds the exclusive lock from Begin until Commit or Rollback, so every
// read-modify-write on an order is atomic with respect to other writers.
package memory

import (
	"context"
	"slices"
	"sync"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// Store holds every order placed since startup.
type Store struct {
	mu       sync.RWMutex
	orders   map[kernel.OrderID]*order.Order
	inserted []kernel.OrderID
	lastSeq  uint64
}

// NewStore creates an empty store whose first order id is ORD-000001.
func NewStore() *Store {
	return &Store{orders: make(map[kernel.OrderID]*order.Order)}
}

// Get returns a copy of the order, or errs.ErrObjectNotFound.
func (s *Store) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return o.Clone(), nil
}

// ListByCustomer returns copies of the customer's orders, newest first. Orders
// created at the same instant keep reverse insertion order.
func (s *Store) ListByCustomer(_ context.Context, customerID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*order.Order, 0)
	for i := len(s.inserted) - 1; i >= 0; i-- {
		o := s.orders[s.inserted[i]]
		if o.CustomerID() == customerID {
			result = append(result, o.Clone())
		}
	}

	slices.SortStableFunc(result, func(a, b *order.Order) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return result, nil
}

// Count returns the number of committed orders.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders), nil
}

// CountByStatus returns the number of committed orders per current status.
// Statuses without orders are absent.
func (s *Store) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[order.Status]int)
	for _, o := range s.orders {
		counts[o.Status()]++
	}
	return counts, nil
}
