package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// LineItemRequest is the caller-supplied form of one line item.
type LineItemRequest struct {
	ProductID string
	VendorID  string
	Quantity  int
}

// buildLineItems validates every request and reports all failures at once,
// each prefixed with the index of the offending item.
func buildLineItems(requests []LineItemRequest) ([]order.LineItem, error) {
	if len(requests) == 0 {
		return nil, errs.NewValueIsRequiredError("lineItems")
	}

	items := make([]order.LineItem, 0, len(requests))
	var validationErrs []error
	for i, r := range requests {
		item, err := order.NewLineItem(r.ProductID, r.VendorID, r.Quantity)
		if err != nil {
			validationErrs = append(validationErrs, fmt.Errorf("lineItems[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(validationErrs...); err != nil {
		return nil, err
	}
	return items, nil
}
