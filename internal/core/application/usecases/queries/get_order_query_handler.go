package queries

import (
	"context"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// GetOrderQueryHandler reads single orders from the order store.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
}

// NewGetOrderQueryHandler creates a handler reading orders from reader.
func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns the order or errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	id, err := parseOrderID(query.OrderID())
	if err != nil {
		return nil, err
	}

	return h.reader.Get(ctx, id)
}
