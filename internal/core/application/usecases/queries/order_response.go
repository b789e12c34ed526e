// Package queries contains the read-only fulfillment projections. Handlers
// authorize the caller, then read through ports.OrderFinder; they never open
// a unit of work.
package queries

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// LineItemResponse is the read model of one line item.
type LineItemResponse struct {
	ProductID string
	VendorID  string
	Quantity  int
	Status    order.ItemStatus
}

// OrderResponse is the read model of a complete order.
type OrderResponse struct {
	ID                   kernel.UUID
	CustomerID           string
	LineItems            []LineItemResponse
	Notes                string
	Status               order.Status
	IsCancelled          bool
	IsPartiallyDelivered bool
	CancellationNote     string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DispatchedAt         *time.Time
	DeliveredAt          *time.Time
	Version              int
}

// NewOrderResponse projects an order aggregate into its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		items = append(items, LineItemResponse{
			ProductID: item.ProductID(),
			VendorID:  item.VendorID(),
			Quantity:  item.Quantity(),
			Status:    item.Status(),
		})
	}

	return OrderResponse{
		ID:                   o.ID(),
		CustomerID:           o.CustomerID(),
		LineItems:            items,
		Notes:                o.Notes(),
		Status:               o.Status(),
		IsCancelled:          o.IsCancelled(),
		IsPartiallyDelivered: o.IsPartiallyDelivered(),
		CancellationNote:     o.CancellationNote(),
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
		DispatchedAt:         o.DispatchedAt(),
		DeliveredAt:          o.DeliveredAt(),
		Version:              o.Version(),
	}
}
