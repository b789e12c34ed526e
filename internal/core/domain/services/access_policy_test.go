package services_test

import (
	"slices"
	"testing"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy_Authorize(t *testing.T) {
	policy := services.NewAccessPolicy()

	tests := []struct {
		op      services.Operation
		allowed []access.Role
	}{
		{services.CreateOrder, []access.Role{access.Vendor, access.Customer}},
		{services.UpdateOrder, []access.Role{access.Vendor, access.Administrator}},
		{services.CancelOrder, []access.Role{access.Vendor, access.Administrator, access.Customer, access.CSR}},
		{services.PrivilegedCancel, []access.Role{access.CSR, access.Administrator}},
		{services.MarkOrderShipped, []access.Role{access.Vendor, access.Administrator}},
		{services.MarkOrderDelivered, []access.Role{access.CSR, access.Administrator, access.Vendor}},
		{services.GetOrderStatus, []access.Role{access.Vendor, access.Administrator, access.Customer, access.CSR}},
		{services.GetOrder, []access.Role{access.Vendor, access.Administrator, access.Customer, access.CSR}},
		{services.ListOrders, []access.Role{access.Vendor, access.Administrator, access.Customer, access.CSR}},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			for _, role := range []access.Role{access.Customer, access.Vendor, access.CSR, access.Administrator} {
				err := policy.Authorize(tt.op, access.NewRoles(role))

				if containsRole(tt.allowed, role) {
					assert.NoError(t, err, "role %s", role)
				} else {
					require.ErrorIs(t, err, errs.ErrAccessIsDenied, "role %s", role)
				}
			}
		})
	}
}

func TestAccessPolicy_AuthorizeWithoutRoles(t *testing.T) {
	policy := services.NewAccessPolicy()

	err := policy.Authorize(services.GetOrderStatus, access.NewRoles())

	var denied *errs.AccessIsDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "GetOrderStatus", denied.Operation)
	assert.Empty(t, denied.Roles)
}

func TestAccessPolicy_UnknownOperation(t *testing.T) {
	policy := services.NewAccessPolicy()

	err := policy.Authorize(services.Operation("DropTables"), access.NewRoles(access.Administrator))

	require.ErrorIs(t, err, errs.ErrAccessIsDenied)
}

func TestAccessPolicy_DeniedErrorListsRoles(t *testing.T) {
	policy := services.NewAccessPolicy()

	err := policy.Authorize(services.MarkOrderShipped, access.NewRoles(access.Customer, access.CSR))

	require.Error(t, err)
	assert.Equal(t, "access is denied: MarkOrderShipped is not permitted for roles [Customer, CSR]", err.Error())
}

func TestAccessPolicy_IsPrivilegedCanceller(t *testing.T) {
	policy := services.NewAccessPolicy()

	assert.True(t, policy.IsPrivilegedCanceller(access.NewRoles(access.CSR)))
	assert.True(t, policy.IsPrivilegedCanceller(access.NewRoles(access.Customer, access.Administrator)))
	assert.False(t, policy.IsPrivilegedCanceller(access.NewRoles(access.Customer)))
	assert.False(t, policy.IsPrivilegedCanceller(access.NewRoles(access.Vendor)))
	assert.False(t, policy.IsPrivilegedCanceller(access.NewRoles()))
}

func containsRole(roles []access.Role, role access.Role) bool {
	return slices.Contains(roles, role)
}
