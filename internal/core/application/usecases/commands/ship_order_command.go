package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
)

// ShipOrderCommand marks a Processing order as dispatched.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	roles   access.Roles

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a validated ship order command.
func NewShipOrderCommand(orderID kernel.UUID, roles access.Roles) (ShipOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipOrderCommand{}, err
	}

	return ShipOrderCommand{
		orderID: orderID,
		roles:   roles,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports an error when the value was not created via its constructor.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Roles returns the roles of the caller.
func (c ShipOrderCommand) Roles() access.Roles {
	return c.roles
}
