package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// ItemStatus is the delivery state of a single line item.
type ItemStatus int

const (
	ItemUnknown ItemStatus = iota
	ItemPending
	ItemPartiallyDelivered
	ItemDelivered
	ItemCancelled
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown:            "Unknown",
		ItemPending:            "Pending",
		ItemPartiallyDelivered: "PartiallyDelivered",
		ItemDelivered:          "Delivered",
		ItemCancelled:          "Cancelled",
	}
}

// String returns the item status name, "Unknown" for undefined values.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects ItemUnknown and undefined values.
func (s ItemStatus) Validate() error {
	if s <= ItemUnknown || s > ItemCancelled {
		return errs.NewValueIsInvalidErrorWithCause("item status is invalid", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// hasDeliveryOutcome reports whether at least part of the item reached the customer.
func (s ItemStatus) hasDeliveryOutcome() bool {
	return s == ItemDelivered || s == ItemPartiallyDelivered
}

// LineItem is one vendor's product and quantity within an order.
// Product, vendor and quantity are fixed at creation; only the status moves.
type LineItem struct {
	productID string
	vendorID  string
	quantity  int
	status    ItemStatus
}

// NewLineItem creates a Pending line item.
//
// Returns a joined validation error when productID or vendorID is blank or
// quantity is not positive.
func NewLineItem(productID, vendorID string, quantity int) (LineItem, error) {
	return RestoreLineItem(productID, vendorID, quantity, ItemPending)
}

// RestoreLineItem rebuilds a persisted line item, validating every field.
func RestoreLineItem(productID, vendorID string, quantity int, status ItemStatus) (LineItem, error) {
	item := LineItem{}
	if err := errors.Join(
		item.setProductID(productID),
		item.setVendorID(vendorID),
		item.setQuantity(quantity),
		item.setStatus(status),
	); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// ProductID returns the vendor product identifier.
func (i LineItem) ProductID() string {
	return i.productID
}

// VendorID returns the vendor identifier.
func (i LineItem) VendorID() string {
	return i.vendorID
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Status returns the delivery status of the item.
func (i LineItem) Status() ItemStatus {
	return i.status
}

// IsSuppliedBy reports whether vendorID owns the item.
func (i LineItem) IsSuppliedBy(vendorID string) bool {
	return i.vendorID == vendorID
}

func (i *LineItem) markDelivered() {
	i.status = ItemDelivered
}

func (i *LineItem) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setVendorID(vendorID string) error {
	if strings.TrimSpace(vendorID) == "" {
		return errs.NewValueIsRequiredError("vendorId")
	}
	i.vendorID = vendorID
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setStatus(status ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	i.status = status
	return nil
}
