package http

import (
	"time"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/services"
)

// Item is an order line on the wire.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	CustomerID      string  `json:"customerId"`
	RestaurantID    string  `json:"restaurantId"`
	Items           []Item  `json:"items"`
	DeliveryAddress string  `json:"deliveryAddress"`
	TotalAmount     float64 `json:"totalAmount"`
}

// Order is the wire form of an order. Status timestamps are omitted until reached.
type Order struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customerId"`
	RestaurantID      string     `json:"restaurantId"`
	Items             []Item     `json:"items"`
	DeliveryAddress   string     `json:"deliveryAddress"`
	TotalAmount       float64    `json:"totalAmount"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	EstimatedDelivery time.Time  `json:"estimatedDelivery"`
	ConfirmedAt       *time.Time `json:"confirmedAt,omitempty"`
	PreparingAt       *time.Time `json:"preparingAt,omitempty"`
	OutForDeliveryAt  *time.Time `json:"outForDeliveryAt,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracking is the body of GET /orders/{id}/track.
type Tracking struct {
	OrderID           string               `json:"orderId"`
	Status            string               `json:"status"`
	EstimatedDelivery time.Time            `json:"estimatedDelivery"`
	CurrentLocation   string               `json:"currentLocation"`
	StatusHistory     []StatusHistoryEntry `json:"statusHistory"`
}

// Health is the body of GET /health.
type Health struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Port        string `json:"port"`
	TotalOrders int    `json:"totalOrders"`
}

// Envelope wraps every /orders response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Server  string `json:"server,omitempty"`
}

func (i Item) toDomain() order.Item {
	return order.NewItem(i.ID, i.Name, i.Quantity, i.Price)
}

func toItems(items []Item) []order.Item {
	if items == nil {
		return nil
	}
	result := make([]order.Item, len(items))
	for idx, item := range items {
		result[idx] = item.toDomain()
	}
	return result
}

func fromOrder(o *order.Order) Order {
	items := make([]Item, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, Item{
			ID:       item.ID(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return Order{
		ID:                o.ID().String(),
		CustomerID:        o.CustomerID(),
		RestaurantID:      o.RestaurantID(),
		Items:             items,
		DeliveryAddress:   o.DeliveryAddress(),
		TotalAmount:       o.TotalAmount(),
		Status:            o.Status().String(),
		CreatedAt:         o.CreatedAt(),
		EstimatedDelivery: o.EstimatedDelivery(),
		ConfirmedAt:       o.ConfirmedAt(),
		PreparingAt:       o.PreparingAt(),
		OutForDeliveryAt:  o.OutForDeliveryAt(),
		DeliveredAt:       o.DeliveredAt(),
		CancelledAt:       o.CancelledAt(),
	}
}

func fromOrders(orders []*order.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, fromOrder(o))
	}
	return result
}

func fromTrackingView(view services.TrackingView) Tracking {
	history := make([]StatusHistoryEntry, 0, len(view.StatusHistory))
	for _, entry := range view.StatusHistory {
		history = append(history, StatusHistoryEntry{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
		})
	}

	return Tracking{
		OrderID:           view.OrderID.String(),
		Status:            view.Status.String(),
		EstimatedDelivery: view.EstimatedDelivery,
		CurrentLocation:   view.CurrentLocation,
		StatusHistory:     history,
	}
}
