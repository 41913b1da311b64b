package commands

import (
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

// parseOrderID treats a malformed identifier like an unknown one: no order can
// ever carry it.
func parseOrderID(raw string) (kernel.OrderID, error) {
	id, err := kernel.OrderIDFromString(raw)
	if err != nil {
		return kernel.OrderID{}, errs.NewObjectNotFoundErrorWithCause("orderId", raw, err)
	}
	return id, nil
}
