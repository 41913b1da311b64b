package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

// DefaultDeliveryWindow is the offset between placing an order and its estimated delivery.
const DefaultDeliveryWindow = 40 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the order service. It tracks a single customer
// purchase from placement through delivery or cancellation.
//
// Order follows these invariants:
//   - id, customer, restaurant, items, delivery address and total are fixed at creation
//   - status only moves forward along the lifecycle; Delivered and Cancelled are terminal
//   - every status reached after Pending is stamped exactly once with the time it was applied
type Order struct {
	id                kernel.OrderID
	customerID        string
	restaurantID      string
	items             []Item
	deliveryAddress   string
	totalAmount       float64
	status            Status
	createdAt         time.Time
	estimatedDelivery time.Time

	// stampedAt holds the time each non-initial status was applied.
	stampedAt map[Status]time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder places a new order in Pending status.
//
// Parameters:
//   - id: identifier allocated by the order store
//   - customerID, restaurantID: opaque references, must not be empty
//   - items: order lines, at least one
//   - deliveryAddress: must not be empty
//   - totalAmount: charged total; zero means "derive from items", negative is rejected
//   - createdAt: placement time
//   - deliveryWindow: offset of the estimated delivery from createdAt
//
// All validation failures are reported together.
//
// Example:
//
//	items := []order.Item{order.NewItem("m-1", "Margherita", 1, 650)}
//	o, err := order.NewOrder(id, "cust-1", "rest-1", items, "221B Baker St", 0, now, order.DefaultDeliveryWindow)
func NewOrder(
	id kernel.OrderID,
	customerID, restaurantID string,
	items []Item,
	deliveryAddress string,
	totalAmount float64,
	createdAt time.Time,
	deliveryWindow time.Duration,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		stampedAt: make(map[Status]time.Time),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotalAmount(totalAmount),
		o.setSchedule(createdAt, deliveryWindow),
	); err != nil {
		return nil, err
	}

	if o.totalAmount == 0 {
		o.totalAmount = TotalOf(o.items)
	}

	o.events = append(o.events, newEvent(o, EventTypeCreated, Unknown, Pending, createdAt))
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// RestaurantID returns the restaurant preparing the order.
func (o *Order) RestaurantID() string {
	return o.restaurantID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// DeliveryAddress returns where the order is delivered.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// TotalAmount returns the charged total, derived from the items when none was given.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDelivery returns the promised delivery time, fixed at placement.
func (o *Order) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// StatusChangedAt returns when the order entered status s. Pending reports the
// creation time; statuses not reached yet report false.
func (o *Order) StatusChangedAt(s Status) (time.Time, bool) {
	if s == Pending {
		return o.createdAt, true
	}
	at, ok := o.stampedAt[s]
	return at, ok
}

// ConfirmedAt returns when the restaurant confirmed the order, nil if it has not.
func (o *Order) ConfirmedAt() *time.Time {
	return o.stamp(Confirmed)
}

// PreparingAt returns when the kitchen started preparing, nil if it has not.
func (o *Order) PreparingAt() *time.Time {
	return o.stamp(Preparing)
}

// OutForDeliveryAt returns when the order left the kitchen, nil if it has not.
func (o *Order) OutForDeliveryAt() *time.Time {
	return o.stamp(OutForDelivery)
}

// DeliveredAt returns when the order was delivered, nil if it has not been.
func (o *Order) DeliveredAt() *time.Time {
	return o.stamp(Delivered)
}

// CancelledAt returns when the order was cancelled, nil if it was not.
func (o *Order) CancelledAt() *time.Time {
	return o.stamp(Cancelled)
}

// AdvanceTo moves the order forward to target and stamps the transition with at.
//
// The move is rejected with errs.ErrStatusTransitionIsNotAllowed when the order is in
// a terminal status or target is not strictly later on the forward path. Rejected
// moves leave the order untouched, so stale or duplicated scheduled transitions can
// be applied safely.
func (o *Order) AdvanceTo(target Status, at time.Time) error {
	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.transition(newStatus, at)
	return nil
}

// Cancel cancels the order if it has not left the kitchen yet.
// Returns errs.ErrStatusTransitionIsNotAllowed for OutForDelivery, Delivered and
// Cancelled orders.
func (o *Order) Cancel(at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.transition(newStatus, at)
	return nil
}

// Events returns the events recorded since the order was loaded.
func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

// ClearEvents drops recorded events once they have been handed off.
func (o *Order) ClearEvents() {
	o.events = nil
}

// Clone returns a deep copy without recorded events. Stores hand out clones so that
// callers never share mutable state with the stored instance.
func (o *Order) Clone() *Order {
	clone := *o
	clone.items = slices.Clone(o.items)
	clone.stampedAt = make(map[Status]time.Time, len(o.stampedAt))
	for s, at := range o.stampedAt {
		clone.stampedAt[s] = at
	}
	clone.events = nil
	return &clone
}

func (o *Order) transition(to Status, at time.Time) {
	from := o.status
	o.status = to
	o.stampedAt[to] = at
	o.events = append(o.events, newEvent(o, EventTypeStatusChanged, from, to, at))
}

func (o *Order) stamp(s Status) *time.Time {
	at, ok := o.stampedAt[s]
	if !ok {
		return nil
	}
	return &at
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setTotalAmount(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%v is negative", total))
	}
	o.totalAmount = total
	return nil
}

func (o *Order) setSchedule(createdAt time.Time, deliveryWindow time.Duration) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if deliveryWindow < 0 {
		return errs.NewValueIsOutOfRangeError("deliveryWindow", deliveryWindow, time.Duration(0), "unbounded")
	}
	o.createdAt = createdAt
	o.estimatedDelivery = createdAt.Add(deliveryWindow)
	return nil
}
