package queries

import (
	"errors"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery lists every order placed by one customer.
type GetCustomerOrdersQuery struct {
	customerID string

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for the orders of customerID.
func NewGetCustomerOrdersQuery(customerID string) (GetCustomerOrdersQuery, error) {
	if customerID == "" {
		return GetCustomerOrdersQuery{}, errs.NewValueIsRequiredError("customerId")
	}
	return GetCustomerOrdersQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through NewGetCustomerOrdersQuery.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q GetCustomerOrdersQuery) CustomerID() string {
	return q.customerID
}
