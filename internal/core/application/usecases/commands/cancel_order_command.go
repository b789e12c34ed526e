package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// CancelOrderCommand cancels an order. Whether the before-dispatch restriction
// applies is decided from the caller's roles, not by the caller.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(orderID, "customer changed their mind", access.NewRoles(access.CSR))
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	note    string
	roles   access.Roles

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a validated cancel order command.
func NewCancelOrderCommand(orderID kernel.UUID, note string, roles access.Roles) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		note:  note,
		roles: roles,
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate reports an error when the value was not created via its constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Note returns the cancellation note.
func (c CancelOrderCommand) Note() string {
	return c.note
}

// Roles returns the roles of the caller.
func (c CancelOrderCommand) Roles() access.Roles {
	return c.roles
}
