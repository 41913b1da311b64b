package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand is a scheduled lifecycle step firing for an order.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates the command for moving orderID to target.
// Both must be valid; whether the move is still applicable is decided when it runs.
func NewAdvanceOrderStatusCommand(orderID kernel.OrderID, target order.Status) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through NewAdvanceOrderStatusCommand.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderStatusCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Target returns the status the order should move to.
func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
