package queries

import (
	"context"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// GetCustomerOrdersQueryHandler lists a customer's orders, most recent first.
// A customer without orders gets an empty, non-nil slice.
type GetCustomerOrdersQueryHandler struct {
	reader ports.OrderReader
}

// NewGetCustomerOrdersQueryHandler creates a handler listing orders from reader.
func NewGetCustomerOrdersQueryHandler(reader ports.OrderReader) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{reader: reader}
}

// Handle returns the customer's orders, newest first. Unknown customers get an
// empty, non-nil slice.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]*order.Order, 0)
	}
	return orders, nil
}
