package services

import (
	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/pkg/errs"
)

// Operation names a role-restricted fulfillment operation.
type Operation string

const (
	CreateOrder        Operation = "CreateOrder"
	UpdateOrder        Operation = "UpdateOrder"
	CancelOrder        Operation = "CancelOrder"
	PrivilegedCancel   Operation = "PrivilegedCancel"
	MarkOrderShipped   Operation = "MarkOrderShipped"
	MarkOrderDelivered Operation = "MarkOrderDelivered"
	GetOrderStatus     Operation = "GetOrderStatus"
	GetOrder           Operation = "GetOrder"
	ListOrders         Operation = "ListOrders"
)

var allRoles = []access.Role{access.Vendor, access.Administrator, access.Customer, access.CSR}

// AccessPolicy maps every operation to the roles allowed to invoke it.
// Operations missing from the table are denied to everyone.
//
// Example:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.Authorize(services.MarkOrderShipped, roles); err != nil {
//	    return err // *errs.AccessIsDeniedError
//	}
type AccessPolicy struct {
	rules map[Operation][]access.Role
}

// NewAccessPolicy returns the marketplace role table.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{
		rules: map[Operation][]access.Role{
			CreateOrder:        {access.Vendor, access.Customer},
			UpdateOrder:        {access.Vendor, access.Administrator},
			CancelOrder:        allRoles,
			PrivilegedCancel:   {access.CSR, access.Administrator},
			MarkOrderShipped:   {access.Vendor, access.Administrator},
			MarkOrderDelivered: {access.CSR, access.Administrator, access.Vendor},
			GetOrderStatus:     allRoles,
			GetOrder:           allRoles,
			ListOrders:         allRoles,
		},
	}
}

// Allows reports whether any of roles may invoke op.
func (p AccessPolicy) Allows(op Operation, roles access.Roles) bool {
	allowed, ok := p.rules[op]
	return ok && roles.HasAny(allowed...)
}

// Authorize returns an AccessIsDeniedError when roles may not invoke op.
func (p AccessPolicy) Authorize(op Operation, roles access.Roles) error {
	if !p.Allows(op, roles) {
		return errs.NewAccessIsDeniedError(string(op), roles.Strings())
	}
	return nil
}

// IsPrivilegedCanceller reports whether a cancel by roles may bypass the
// before-dispatch restriction.
func (p AccessPolicy) IsPrivilegedCanceller(roles access.Roles) bool {
	return p.Allows(PrivilegedCancel, roles)
}
