package commands

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput is one requested line, as received from the client.
type LineItemInput struct {
	Name      string
	UnitPrice decimal.Decimal
}

// CreateOrderCommand places an order for the acting customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), actor, restaurantID, []LineItemInput{
//	    {Name: "Margherita", UnitPrice: decimal.NewFromInt(10)},
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        kernel.Actor
	restaurantID kernel.UUID
	lineItems    []order.LineItem

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	restaurantID kernel.UUID,
	items []LineItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setRestaurantID(restaurantID),
		cmd.setLineItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) LineItems() []order.LineItem {
	items := make([]order.LineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for i, in := range items {
		item, err := order.NewLineItem(in.Name, in.UnitPrice)
		if err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
		lineItems = append(lineItems, item)
	}

	c.lineItems = lineItems
	return nil
}
