package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one complete order.
type GetOrderQuery struct {
	orderID kernel.UUID
	roles   access.Roles

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated get order query.
func NewGetOrderQuery(orderID kernel.UUID, roles access.Roles) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, roles: roles, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports an error when the value was not created via its constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Roles returns the roles of the caller.
func (q GetOrderQuery) Roles() access.Roles {
	return q.roles
}
