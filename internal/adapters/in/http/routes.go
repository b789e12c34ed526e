package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	CustomerID *string   `form:"customerId,omitempty" json:"customerId,omitempty"`
	VendorID   *string   `form:"vendorId,omitempty" json:"vendorId,omitempty"`
	Status     *[]string `form:"status,omitempty" json:"status,omitempty"`
	Limit      *int      `form:"limit,omitempty" json:"limit,omitempty"`
	Offset     *int      `form:"offset,omitempty" json:"offset,omitempty"`
}

// CancelOrderParams defines parameters for CancelOrder.
type CancelOrderParams struct {
	Note *string `form:"note,omitempty" json:"note,omitempty"`
}

// ServerInterface represents all server handlers of api/openapi.yaml.
type ServerInterface interface {
	// Create an order in Processing status
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// List a customer's orders or a vendor's worklist
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Get a complete order
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// Replace line items and notes of a Processing order
	// (PUT /api/v1/orders/{id})
	UpdateOrder(ctx echo.Context, id openapi_types.UUID) error
	// Cancel an order
	// (DELETE /api/v1/orders/{id})
	CancelOrder(ctx echo.Context, id openapi_types.UUID, params CancelOrderParams) error
	// Cancel an order on behalf of the customer
	// (PUT /api/v1/orders/{id}/cancel)
	CancelOrderWithNote(ctx echo.Context, id openapi_types.UUID) error
	// Mark a Processing order as shipped
	// (PUT /api/v1/orders/{id}/ship)
	MarkOrderShipped(ctx echo.Context, id openapi_types.UUID) error
	// Confirm delivery of the whole order or of one vendor's items
	// (PUT /api/v1/orders/{id}/deliver)
	MarkOrderDelivered(ctx echo.Context, id openapi_types.UUID) error
	// Get the aggregate status of an order
	// (GET /api/v1/orders/{id}/status)
	GetOrderStatus(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// ListOrders binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	for name, dest := range map[string]any{
		"customerId": &params.CustomerID,
		"vendorId":   &params.VendorID,
		"status":     &params.Status,
		"limit":      &params.Limit,
		"offset":     &params.Offset,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	return w.Handler.ListOrders(ctx, params)
}

// GetOrder binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// UpdateOrder binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, id)
}

// CancelOrder binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	var params CancelOrderParams
	err = runtime.BindQueryParameter("form", true, false, "note", ctx.QueryParams(), &params.Note)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter note: %s", err))
	}

	return w.Handler.CancelOrder(ctx, id, params)
}

// CancelOrderWithNote binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) CancelOrderWithNote(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrderWithNote(ctx, id)
}

// MarkOrderShipped binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) MarkOrderShipped(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkOrderShipped(ctx, id)
}

// MarkOrderDelivered binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) MarkOrderDelivered(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkOrderDelivered(ctx, id)
}

// GetOrderStatus binds the request parameters and calls the ServerInterface.
func (w *ServerInterfaceWrapper) GetOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderStatus(ctx, id)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.GET(baseURL+"/api/v1/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:id", wrapper.UpdateOrder)
	router.DELETE(baseURL+"/api/v1/orders/:id", wrapper.CancelOrder)
	router.PUT(baseURL+"/api/v1/orders/:id/cancel", wrapper.CancelOrderWithNote)
	router.PUT(baseURL+"/api/v1/orders/:id/ship", wrapper.MarkOrderShipped)
	router.PUT(baseURL+"/api/v1/orders/:id/deliver", wrapper.MarkOrderDelivered)
	router.GET(baseURL+"/api/v1/orders/:id/status", wrapper.GetOrderStatus)
}
