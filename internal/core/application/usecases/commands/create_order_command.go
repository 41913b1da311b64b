package commands

import (
	"errors"
	"fmt"
	"slices"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer placing a new order.
//
// Example:
//
//	items := []order.Item{order.NewItem("m-1", "Margherita", 2, 650)}
//	cmd, err := NewCreateOrderCommand("cust-1", "rest-1", items, "221B Baker St", 0)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed, expected at %s", o.ID(), o.EstimatedDelivery())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      string
	restaurantID    string
	items           []order.Item
	deliveryAddress string
	totalAmount     float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order.
// customerID, restaurantID, deliveryAddress and at least one item are required.
// A zero totalAmount lets the order derive its total from the items; a negative one
// is rejected. All validation failures are reported together.
func NewCreateOrderCommand(
	customerID, restaurantID string,
	items []order.Item,
	deliveryAddress string,
	totalAmount float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// RestaurantID returns the restaurant the order is placed with.
func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// Items returns a copy of the submitted order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

// DeliveryAddress returns where the order should be delivered.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// TotalAmount returns the submitted total; zero means it is derived from the items.
func (c CreateOrderCommand) TotalAmount() float64 {
	return c.totalAmount
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%v is negative", total))
	}

	c.totalAmount = total
	return nil
}
