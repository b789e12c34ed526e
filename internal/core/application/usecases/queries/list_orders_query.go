package queries

import (
	"errors"
	"slices"
	"strings"

	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists a customer's order history or a vendor's worklist.
//
// Example:
//
//	// shipped and partially delivered orders containing items of vendor V1
//	query, err := NewListOrdersQuery("", "V1",
//	    []order.Status{order.Shipped, order.PartiallyDelivered}, 0, 0, roles)
type ListOrdersQuery struct {
	customerID string
	vendorID   string
	statuses   []order.Status
	limit      int
	offset     int
	roles      access.Roles

	guard guard.ConstructorGuard
}

// NewListOrdersQuery requires exactly one of customerID and vendorID.
// A zero limit selects DefaultListLimit.
func NewListOrdersQuery(
	customerID, vendorID string,
	statuses []order.Status,
	limit, offset int,
	roles access.Roles,
) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		roles: roles,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOwner(customerID, vendorID),
		q.setStatuses(statuses),
		q.setPage(limit, offset),
	); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

// Validate reports an error when the value was not created via its constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CustomerID returns the identifier of the customer who placed the order.
func (q ListOrdersQuery) CustomerID() string {
	return q.customerID
}

// VendorID returns the vendor identifier.
func (q ListOrdersQuery) VendorID() string {
	return q.vendorID
}

// Statuses returns the status filter, empty for any status.
func (q ListOrdersQuery) Statuses() []order.Status {
	return slices.Clone(q.statuses)
}

// Limit returns the maximum number of orders returned.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of orders skipped.
func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// Roles returns the roles of the caller.
func (q ListOrdersQuery) Roles() access.Roles {
	return q.roles
}

func (q *ListOrdersQuery) setOwner(customerID, vendorID string) error {
	customerID, vendorID = strings.TrimSpace(customerID), strings.TrimSpace(vendorID)
	switch {
	case customerID == "" && vendorID == "":
		return errs.NewValueIsRequiredError("customerId or vendorId")
	case customerID != "" && vendorID != "":
		return errs.NewValueIsInvalidErrorWithCause(
			"customerId",
			errors.New("customerId and vendorId are mutually exclusive"),
		)
	}
	q.customerID, q.vendorID = customerID, vendorID
	return nil
}

func (q *ListOrdersQuery) setStatuses(statuses []order.Status) error {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	q.statuses = slices.Clone(statuses)
	return nil
}

func (q *ListOrdersQuery) setPage(limit, offset int) error {
	if limit == 0 {
		limit = DefaultListLimit
	}
	var limitErr, offsetErr error
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if err := errors.Join(limitErr, offsetErr); err != nil {
		return err
	}
	q.limit, q.offset = limit, offset
	return nil
}
