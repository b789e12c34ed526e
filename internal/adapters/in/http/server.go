// Package http exposes the fulfillment operations over a JSON REST API built
// on echo. Caller roles come from the gateway headers X-User-Roles and
// X-User-ID; requests are checked against the embedded OpenAPI document
// before they reach a handler.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	UpdateOrder        commands.UpdateOrderCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
	MarkOrderShipped   commands.ShipOrderCommandHandler
	MarkOrderDelivered commands.MarkOrderDeliveredCommandHandler
	GetOrderStatus     queries.GetOrderStatusQueryHandler
	GetOrder           queries.GetOrderQueryHandler
	ListOrders         queries.ListOrdersQueryHandler
}

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	caller := callerFrom(ctx)
	customerID, err := caller.customerIDFor("CreateOrder", body.CustomerID)
	if err != nil {
		return s.observe("CreateOrder", err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, toLineItemRequests(body.LineItems), body.Notes, caller.Roles,
	)
	if err != nil {
		return s.observe("CreateOrder", err)
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err = s.observe("CreateOrder", err); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderResponse(o)))
}

// UpdateOrder handles PUT /api/v1/orders/{id}.
func (s *Server) UpdateOrder(ctx echo.Context, id openapi_types.UUID) error {
	var body OrderUpdate
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	orderID, err := toOrderID(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, toLineItemRequests(body.LineItems), body.Notes, callerFrom(ctx).Roles)
	if err != nil {
		return s.observe("UpdateOrder", err)
	}

	o, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	return s.respondOrder(ctx, "UpdateOrder", o, err)
}

// CancelOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) CancelOrder(ctx echo.Context, id openapi_types.UUID, params CancelOrderParams) error {
	note := ""
	if params.Note != nil {
		note = *params.Note
	}
	return s.cancel(ctx, id, note)
}

// CancelOrderWithNote handles PUT /api/v1/orders/{id}/cancel.
func (s *Server) CancelOrderWithNote(ctx echo.Context, id openapi_types.UUID) error {
	var body Cancellation
	if ctx.Request().ContentLength != 0 {
		if err := bindAndValidate(ctx, &body); err != nil {
			return err
		}
	}
	return s.cancel(ctx, id, body.Note)
}

func (s *Server) cancel(ctx echo.Context, id openapi_types.UUID, note string) error {
	orderID, err := toOrderID(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, note, callerFrom(ctx).Roles)
	if err != nil {
		return s.observe("CancelOrder", err)
	}

	o, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	return s.respondOrder(ctx, "CancelOrder", o, err)
}

// MarkOrderShipped handles PUT /api/v1/orders/{id}/ship.
func (s *Server) MarkOrderShipped(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toOrderID(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewShipOrderCommand(orderID, callerFrom(ctx).Roles)
	if err != nil {
		return s.observe("MarkOrderShipped", err)
	}

	o, err := s.handlers.MarkOrderShipped.Handle(ctx.Request().Context(), cmd)
	return s.respondOrder(ctx, "MarkOrderShipped", o, err)
}

// MarkOrderDelivered handles PUT /api/v1/orders/{id}/deliver.
// An empty body confirms full delivery.
func (s *Server) MarkOrderDelivered(ctx echo.Context, id openapi_types.UUID) error {
	var body Delivery
	if ctx.Request().ContentLength != 0 {
		if err := bindAndValidate(ctx, &body); err != nil {
			return err
		}
	}

	orderID, err := toOrderID(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(orderID, body.Partial, body.VendorID, callerFrom(ctx).Roles)
	if err != nil {
		return s.observe("MarkOrderDelivered", err)
	}

	o, err := s.handlers.MarkOrderDelivered.Handle(ctx.Request().Context(), cmd)
	return s.respondOrder(ctx, "MarkOrderDelivered", o, err)
}

// GetOrderStatus handles GET /api/v1/orders/{id}/status.
func (s *Server) GetOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toOrderID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderStatusQuery(orderID, callerFrom(ctx).Roles)
	if err != nil {
		return s.observe("GetOrderStatus", err)
	}

	response, err := s.handlers.GetOrderStatus.Handle(ctx.Request().Context(), query)
	if err = s.observe("GetOrderStatus", err); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		ID:     response.OrderID.String(),
		Status: response.Status.String(),
	})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toOrderID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, callerFrom(ctx).Roles)
	if err != nil {
		return s.observe("GetOrder", err)
	}

	response, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err = s.observe("GetOrder", err); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(response))
}

// ListOrders handles GET /api/v1/orders. A customer listing without filters
// sees their own history.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	caller := callerFrom(ctx)

	customerID := deref(params.CustomerID)
	vendorID := deref(params.VendorID)
	switch {
	case caller.actsOnlyAsCustomer() && vendorID != "":
		return s.observe("ListOrders", errs.NewAccessIsDeniedError("ListOrders", caller.Roles.Strings()))
	case caller.actsOnlyAsCustomer() || (customerID == "" && vendorID == "" && caller.Roles.Has(access.Customer)):
		id, err := caller.customerIDFor("ListOrders", customerID)
		if err != nil {
			return s.observe("ListOrders", err)
		}
		customerID = id
	}

	var statuses []order.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			status, err := order.ParseStatus(name)
			if err != nil {
				return s.observe("ListOrders", err)
			}
			statuses = append(statuses, status)
		}
	}

	limit, offset := 0, 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListOrdersQuery(customerID, vendorID, statuses, limit, offset, caller.Roles)
	if err != nil {
		return s.observe("ListOrders", err)
	}

	responses, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err = s.observe("ListOrders", err); err != nil {
		return err
	}

	out := make([]Order, len(responses))
	for i, r := range responses {
		out[i] = toOrder(r)
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *Server) respondOrder(ctx echo.Context, operation string, o *order.Order, err error) error {
	if err = s.observe(operation, err); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(o)))
}

// observe records the outcome and passes err through.
func (s *Server) observe(operation string, err error) error {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, err)
	}
	return err
}

func bindAndValidate(ctx echo.Context, dest any) error {
	if err := ctx.Bind(dest); err != nil {
		return err
	}
	return ctx.Validate(dest)
}

func toOrderID(id openapi_types.UUID) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid order id").SetInternal(err)
	}
	return orderID, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
