package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand replaces the line items and notes of a Processing order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	lineItems []order.LineItem
	notes     string
	roles     access.Roles

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the new line items exactly as creation does.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	lineItems []LineItemRequest,
	notes string,
	roles access.Roles,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		notes: notes,
		roles: roles,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineItems(lineItems),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate reports an error when the value was not created via its constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineItems returns the validated line items.
func (c UpdateOrderCommand) LineItems() []order.LineItem {
	return c.lineItems
}

// Notes returns the free-text notes.
func (c UpdateOrderCommand) Notes() string {
	return c.notes
}

// Roles returns the roles of the caller.
func (c UpdateOrderCommand) Roles() access.Roles {
	return c.roles
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setLineItems(requests []LineItemRequest) error {
	items, err := buildLineItems(requests)
	if err != nil {
		return err
	}
	c.lineItems = items
	return nil
}
