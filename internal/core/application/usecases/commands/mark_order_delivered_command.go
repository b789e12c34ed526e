package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrMarkOrderDeliveredCommandIsNotConstructed = errors.New(
		"MarkOrderDeliveredCommand must be created via NewMarkOrderDeliveredCommand constructor",
	)
)

// MarkOrderDeliveredCommand confirms delivery of a whole order, or with partial
// set, of every line item supplied by one vendor.
//
// Example:
//
//	// V1 confirms its items of a two-vendor order
//	cmd, err := NewMarkOrderDeliveredCommand(orderID, true, "V1", access.NewRoles(access.Vendor))
type MarkOrderDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	partial  bool
	vendorID string
	roles    access.Roles

	guard guard.ConstructorGuard
}

// NewMarkOrderDeliveredCommand requires vendorID when partial is set and
// ignores it otherwise.
func NewMarkOrderDeliveredCommand(
	orderID kernel.UUID,
	partial bool,
	vendorID string,
	roles access.Roles,
) (MarkOrderDeliveredCommand, error) {
	cmd := MarkOrderDeliveredCommand{
		partial: partial,
		roles:   roles,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVendorID(vendorID),
	); err != nil {
		return MarkOrderDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate reports an error when the value was not created via its constructor.
func (c MarkOrderDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c MarkOrderDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IsPartial reports whether only one vendor's items are confirmed.
func (c MarkOrderDeliveredCommand) IsPartial() bool {
	return c.partial
}

// VendorID is empty for a full delivery.
func (c MarkOrderDeliveredCommand) VendorID() string {
	return c.vendorID
}

// Roles returns the roles of the caller.
func (c MarkOrderDeliveredCommand) Roles() access.Roles {
	return c.roles
}

func (c *MarkOrderDeliveredCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkOrderDeliveredCommand) setVendorID(vendorID string) error {
	if !c.partial {
		return nil
	}
	if strings.TrimSpace(vendorID) == "" {
		return errs.NewValueIsRequiredError("vendorId")
	}
	c.vendorID = vendorID
	return nil
}
