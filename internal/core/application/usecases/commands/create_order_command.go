package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a customer's purchase of one or more vendor products.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "customer-1", []LineItemRequest{
//	    {ProductID: "sku-1", VendorID: "vendor-1", Quantity: 2},
//	}, "leave at the door", access.NewRoles(access.Customer))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID string
	lineItems  []order.LineItem
	notes      string
	roles      access.Roles

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order ID, the customer and every line item.
// All failures are joined into the returned error.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID string,
	lineItems []LineItemRequest,
	notes string,
	roles access.Roles,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: notes,
		roles: roles,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the customer who placed the order.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// LineItems returns the validated line items.
func (c CreateOrderCommand) LineItems() []order.LineItem {
	return c.lineItems
}

// Notes returns the free-text notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// Roles returns the roles of the caller.
func (c CreateOrderCommand) Roles() access.Roles {
	return c.roles
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLineItems(requests []LineItemRequest) error {
	items, err := buildLineItems(requests)
	if err != nil {
		return err
	}
	c.lineItems = items
	return nil
}
