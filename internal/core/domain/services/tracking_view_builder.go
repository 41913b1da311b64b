package services

import (
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// UnknownLocation is reported for statuses without a location description.
const UnknownLocation = "Unknown"

// historyPath lists the statuses surfaced in tracking history, in display order.
var historyPath = []order.Status{order.Pending, order.Confirmed, order.Preparing, order.OutForDelivery}

func getLocationStrings() map[order.Status]string {
	return map[order.Status]string{
		order.Pending:        "Order received",
		order.Confirmed:      "Restaurant confirmed",
		order.Preparing:      "Kitchen is preparing your food",
		order.OutForDelivery: "Driver is on the way",
		order.Delivered:      "Delivered",
		order.Cancelled:      "Order cancelled",
	}
}

// StatusHistoryEntry is one reached step of an order's forward progress.
type StatusHistoryEntry struct {
	Status    order.Status
	Timestamp time.Time
}

// TrackingView is the client-facing snapshot of an order's progress.
type TrackingView struct {
	OrderID           kernel.OrderID
	Status            order.Status
	EstimatedDelivery time.Time
	CurrentLocation   string
	StatusHistory     []StatusHistoryEntry
}

// TrackingViewBuilder projects orders into tracking snapshots.
//
// The history always starts with the pending entry at creation time, followed by
// confirmed, preparing and out_for_delivery in that fixed order, each only once it
// has been stamped. Delivered and cancelled are reflected in Status and
// CurrentLocation but not in the history.
//
// Example usage:
//
//	view := services.NewTrackingViewBuilder().Build(o)
//	fmt.Println(view.CurrentLocation) // "Kitchen is preparing your food"
type TrackingViewBuilder struct{}

// NewTrackingViewBuilder creates the builder. It holds no state.
func NewTrackingViewBuilder() TrackingViewBuilder {
	return TrackingViewBuilder{}
}

// Build returns the tracking snapshot of o. The order is only read.
func (b TrackingViewBuilder) Build(o *order.Order) TrackingView {
	history := make([]StatusHistoryEntry, 0, len(historyPath))
	for _, s := range historyPath {
		at, ok := o.StatusChangedAt(s)
		if !ok {
			continue
		}
		history = append(history, StatusHistoryEntry{Status: s, Timestamp: at})
	}

	return TrackingView{
		OrderID:           o.ID(),
		Status:            o.Status(),
		EstimatedDelivery: o.EstimatedDelivery(),
		CurrentLocation:   b.Location(o.Status()),
		StatusHistory:     history,
	}
}

// Location returns the human-readable location text for a status.
func (b TrackingViewBuilder) Location(s order.Status) string {
	if location, ok := getLocationStrings()[s]; ok {
		return location
	}
	return UnknownLocation
}
