package commands

import (
	"errors"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a customer cancelling an order before it leaves
// the kitchen.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand("ORD-000042")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation request for the given order id.
// The id is kept as submitted; an id no order can carry is reported as not found
// by the handler.
func NewCancelOrderCommand(orderID string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through NewCancelOrderCommand.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel, as received.
func (c CancelOrderCommand) OrderID() string {
	return c.orderID
}

func (c *CancelOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}

	c.orderID = orderID
	return nil
}
