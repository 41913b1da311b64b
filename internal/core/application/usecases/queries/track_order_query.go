package queries

import (
	"errors"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the customer-facing tracking view of an order:
// current status, estimated delivery, a display location and the status history.
type TrackOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query for the tracking view of orderID.
func NewTrackOrderQuery(orderID string) (TrackOrderQuery, error) {
	if orderID == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return TrackOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through NewTrackOrderQuery.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier, as received.
func (q TrackOrderQuery) OrderID() string {
	return q.orderID
}
