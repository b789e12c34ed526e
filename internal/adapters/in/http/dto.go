package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
)

// LineItemRequest is one requested line item of a create or update body.
type LineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VendorID  string `json:"vendorId"  validate:"required"`
	Quantity  int    `json:"quantity"  validate:"gt=0"`
}

// NewOrder is the body of POST /api/v1/orders.
// CustomerID falls back to the X-User-ID header when omitted.
type NewOrder struct {
	CustomerID string            `json:"customerId"`
	LineItems  []LineItemRequest `json:"lineItems" validate:"required,min=1,dive"`
	Notes      string            `json:"notes"`
}

// OrderUpdate is the body of PUT /api/v1/orders/{id}.
type OrderUpdate struct {
	LineItems []LineItemRequest `json:"lineItems" validate:"required,min=1,dive"`
	Notes     string            `json:"notes"`
}

// Cancellation is the body of PUT /api/v1/orders/{id}/cancel.
type Cancellation struct {
	Note string `json:"note"`
}

// Delivery is the body of PUT /api/v1/orders/{id}/deliver.
type Delivery struct {
	Partial  bool   `json:"partial"`
	VendorID string `json:"vendorId" validate:"required_if=Partial true"`
}

// LineItem is a line item in API responses.
type LineItem struct {
	ProductID string `json:"productId"`
	VendorID  string `json:"vendorId"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
}

// Order is the API representation of an order.
type Order struct {
	ID                   string     `json:"id"`
	CustomerID           string     `json:"customerId"`
	LineItems            []LineItem `json:"lineItems"`
	Notes                string     `json:"notes,omitempty"`
	Status               string     `json:"status"`
	IsCancelled          bool       `json:"isCancelled"`
	IsPartiallyDelivered bool       `json:"isPartiallyDelivered"`
	CancellationNote     string     `json:"cancellationNote,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	DispatchedAt         *time.Time `json:"dispatchedAt,omitempty"`
	DeliveredAt          *time.Time `json:"deliveredAt,omitempty"`
	Version              int        `json:"version"`
}

// OrderStatusResponse is the body of GET /orders/{id}/status.
type OrderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Error is the body of every rejected request.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func toLineItemRequests(items []LineItemRequest) []commands.LineItemRequest {
	out := make([]commands.LineItemRequest, len(items))
	for i, item := range items {
		out[i] = commands.LineItemRequest{
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Quantity:  item.Quantity,
		}
	}
	return out
}

func toOrder(r queries.OrderResponse) Order {
	items := make([]LineItem, len(r.LineItems))
	for i, item := range r.LineItems {
		items[i] = LineItem{
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Quantity:  item.Quantity,
			Status:    item.Status.String(),
		}
	}

	return Order{
		ID:                   r.ID.String(),
		CustomerID:           r.CustomerID,
		LineItems:            items,
		Notes:                r.Notes,
		Status:               r.Status.String(),
		IsCancelled:          r.IsCancelled,
		IsPartiallyDelivered: r.IsPartiallyDelivered,
		CancellationNote:     r.CancellationNote,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
		DispatchedAt:         r.DispatchedAt,
		DeliveredAt:          r.DeliveredAt,
		Version:              r.Version,
	}
}
