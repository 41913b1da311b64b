// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never take the write path and return private copies of stored orders.
package queries

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by its identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-000042")
//	if err != nil {
//	    return err
//	}
//
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // respond 404
//	}
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a lookup for the given order id. The id is kept as
// submitted; malformed ids are reported as not found.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if orderID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier, as received.
func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

func parseOrderID(raw string) (kernel.OrderID, error) {
	id, err := kernel.OrderIDFromString(raw)
	if err != nil {
		return kernel.OrderID{}, errs.NewObjectNotFoundErrorWithCause("orderId", raw, err)
	}
	return id, nil
}
