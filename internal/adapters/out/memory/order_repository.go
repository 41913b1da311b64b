package memory

import (
	"context"
	"fmt"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository inside a UnitOfWork.
type OrderRepository struct {
	uow *UnitOfWork
}

// NextID reserves the sequence number following the last committed (or reserved
// in this transaction) one.
func (r *OrderRepository) NextID(_ context.Context) (kernel.OrderID, error) {
	if !r.uow.active {
		return kernel.OrderID{}, ErrInvalidTransaction
	}

	id, err := kernel.NewOrderID(r.uow.lastSeq + 1)
	if err != nil {
		return kernel.OrderID{}, err
	}
	r.uow.lastSeq++
	return id, nil
}

// Add stages a new order.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrInvalidTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if r.exists(id) {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists", id))
	}

	r.uow.staged[id] = aggregate.Clone()
	r.uow.added = append(r.uow.added, id)
	r.uow.track(aggregate)
	return nil
}

// Update stages a new version of an existing order.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrInvalidTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if !r.exists(id) {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	r.uow.staged[id] = aggregate.Clone()
	r.uow.track(aggregate)
	return nil
}

// Get returns a copy of the order as seen by this transaction.
func (r *OrderRepository) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if !r.uow.active {
		return nil, ErrInvalidTransaction
	}

	if o, ok := r.uow.staged[id]; ok {
		return o.Clone(), nil
	}
	if o, ok := r.uow.store.orders[id]; ok {
		return o.Clone(), nil
	}
	return nil, errs.NewObjectNotFoundError("orderId", id.String())
}

func (r *OrderRepository) exists(id kernel.OrderID) bool {
	if _, ok := r.uow.staged[id]; ok {
		return true
	}
	_, ok := r.uow.store.orders[id]
	return ok
}
