package queries

import (
	"context"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Confirmed,
	order.Preparing,
	order.OutForDelivery,
	order.Delivered,
	order.Cancelled,
}

// GetOrdersSummaryQueryHandler counts stored orders for health reporting and metrics.
type GetOrdersSummaryQueryHandler struct {
	reader ports.OrderReader
}

// NewGetOrdersSummaryQueryHandler creates a handler counting orders in reader.
func NewGetOrdersSummaryQueryHandler(reader ports.OrderReader) GetOrdersSummaryQueryHandler {
	return GetOrdersSummaryQueryHandler{reader: reader}
}

// Handle returns the total and the per-status counts, with every status present.
func (h GetOrdersSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersSummaryQuery,
) (GetOrdersSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersSummaryQueryResponse{}, err
	}

	total, err := h.reader.Count(ctx)
	if err != nil {
		return GetOrdersSummaryQueryResponse{}, err
	}

	counts, err := h.reader.CountByStatus(ctx)
	if err != nil {
		return GetOrdersSummaryQueryResponse{}, err
	}

	byStatus := make(map[order.Status]int, len(allStatuses))
	for _, s := range allStatuses {
		byStatus[s] = counts[s]
	}

	return GetOrdersSummaryQueryResponse{Total: total, ByStatus: byStatus}, nil
}
