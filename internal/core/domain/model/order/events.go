package order

import (
	"time"

	"orderservice/internal/core/domain/model/kernel"
)

// EventType names a kind of order domain event on the wire.
type EventType string

const (
	EventTypeCreated       EventType = "order.created"
	EventTypeStatusChanged EventType = "order.status_changed"
)

// Event is a fact recorded by the Order aggregate. Events are collected by the unit
// of work and published once the change that produced them is committed.
type Event struct {
	ID         kernel.EventID
	Type       EventType
	OrderID    kernel.OrderID
	CustomerID string
	From       Status
	To         Status
	OccurredAt time.Time
}

func newEvent(o *Order, typ EventType, from, to Status, at time.Time) Event {
	return Event{
		ID:         kernel.NewEventID(),
		Type:       typ,
		OrderID:    o.id,
		CustomerID: o.customerID,
		From:       from,
		To:         to,
		OccurredAt: at,
	}
}
