package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the aggregate lifecycle state of an order.
//
// State transitions:
//
//	Processing ──ship──> Shipped
//	Processing | Shipped ──partial──> PartiallyDelivered
//	PartiallyDelivered ──partial──> PartiallyDelivered | Delivered
//	Processing | Shipped | PartiallyDelivered ──deliver──> Delivered
//	Processing ──cancel──> Cancelled
//	Processing | Shipped | PartiallyDelivered ──privileged cancel──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Processing is the initial status. The order may still be updated,
	// cancelled by its customer, shipped or delivered.
	Processing

	// Shipped indicates the order was dispatched. Only delivery and
	// privileged cancellation remain possible.
	Shipped

	// PartiallyDelivered indicates some vendors confirmed delivery of their items.
	PartiallyDelivered

	// Delivered indicates every line item was delivered. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Processing:         "Processing",
		Shipped:            "Shipped",
		PartiallyDelivered: "PartiallyDelivered",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
	}
}

// Validate checks that s is one of the defined statuses other than Unknown.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, "Unknown" for undefined values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ParseStatus resolves a status name as produced by String.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Processing -> Shipped
//
// Every other status is rejected with a StateIsInvalidError naming the
// current status.
func (s Status) Ship() (Status, error) {
	switch s {
	case Processing:
		return Shipped, nil
	case Cancelled:
		return Unknown, errs.NewStateIsInvalidError("order", "cannot ship a cancelled order")
	default:
		return Unknown, errs.NewStateIsInvalidError(
			"order",
			fmt.Sprintf("order can only be shipped while Processing, current status is %s", s),
		)
	}
}

// Cancel transitions the status to Cancelled.
//
// The standard path accepts only Processing. The privileged path accepts any
// status that is neither Delivered nor already Cancelled.
func (s Status) Cancel(privileged bool) (Status, error) {
	switch {
	case s == Delivered:
		return Unknown, errs.NewStateIsInvalidError("order", "cannot cancel a delivered order")
	case s == Cancelled:
		return Unknown, errs.NewStateIsInvalidError("order", "order is already cancelled")
	case s == Processing, privileged && s.Validate() == nil:
		return Cancelled, nil
	default:
		return Unknown, errs.NewStateIsInvalidError(
			"order",
			fmt.Sprintf("order can only be cancelled before dispatch, current status is %s", s),
		)
	}
}

// ValidateDeliver checks that a delivery confirmation is acceptable.
// Delivered and Cancelled orders reject any further delivery.
func (s Status) ValidateDeliver() error {
	switch s {
	case Delivered:
		return errs.NewStateIsInvalidError("order", "order already delivered")
	case Cancelled:
		return errs.NewStateIsInvalidError("order", "cannot deliver a cancelled order")
	}
	return s.Validate()
}
