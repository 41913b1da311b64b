package queries

import (
	"errors"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/guard"
)

var ErrGetOrdersSummaryQueryIsNotConstructed = errors.New(
	"GetOrdersSummaryQuery must be created via NewGetOrdersSummaryQuery constructor",
)

// GetOrdersSummaryQuery reports how many orders the store holds, in total and per
// status. It feeds the health endpoint and the order gauges.
type GetOrdersSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrdersSummaryQuery creates the query; it takes no parameters.
func NewGetOrdersSummaryQuery() GetOrdersSummaryQuery {
	return GetOrdersSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through NewGetOrdersSummaryQuery.
func (q GetOrdersSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersSummaryQueryIsNotConstructed)
}

// GetOrdersSummaryQueryResponse holds the counts. ByStatus has an entry for every
// valid status, zero when no order is in it.
type GetOrdersSummaryQueryResponse struct {
	Total    int
	ByStatus map[order.Status]int
}
