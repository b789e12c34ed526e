package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery reads the aggregate status of one order.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID, access.NewRoles(access.Customer))
//	resp, err := handler.Handle(ctx, query)
//	fmt.Println(resp.Status) // "Shipped"
type GetOrderStatusQuery struct {
	orderID kernel.UUID
	roles   access.Roles

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a validated get order status query.
func NewGetOrderStatusQuery(orderID kernel.UUID, roles access.Roles) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}
	return GetOrderStatusQuery{orderID: orderID, roles: roles, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports an error when the value was not created via its constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Roles returns the roles of the caller.
func (q GetOrderStatusQuery) Roles() access.Roles {
	return q.roles
}

// GetOrderStatusQueryResponse carries the status of one order.
type GetOrderStatusQueryResponse struct {
	OrderID kernel.UUID
	Status  order.Status
}
