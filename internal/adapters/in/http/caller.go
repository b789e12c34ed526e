package http

import (
	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Headers set by the gateway after authentication. Their values are trusted.
const (
	HeaderUserRoles = "X-User-Roles"
	HeaderUserID    = "X-User-ID"
)

const callerKey = "caller"

// Caller is the authenticated identity of a request.
type Caller struct {
	ID    string
	Roles access.Roles
}

// callerMiddleware reads the gateway headers into the request context.
func callerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(callerKey, Caller{
				ID:    c.Request().Header.Get(HeaderUserID),
				Roles: access.ParseRoles(c.Request().Header.Get(HeaderUserRoles)),
			})
			return next(c)
		}
	}
}

// callerFrom returns the caller, or an anonymous caller without roles.
func callerFrom(c echo.Context) Caller {
	caller, _ := c.Get(callerKey).(Caller)
	return caller
}

// actsOnlyAsCustomer reports whether the caller holds the Customer role and no
// role that may act on behalf of other customers.
func (c Caller) actsOnlyAsCustomer() bool {
	return c.Roles.Has(access.Customer) &&
		!c.Roles.HasAny(access.Vendor, access.CSR, access.Administrator)
}

// customerIDFor resolves the customer an operation acts on. Customer-only
// callers are bound to their own X-User-ID: a different requested id is
// denied, and so is any requested id when the header is missing. Other
// callers get requested, or their own id when requested is empty.
func (c Caller) customerIDFor(operation, requested string) (string, error) {
	if !c.actsOnlyAsCustomer() {
		if requested == "" {
			return c.ID, nil
		}
		return requested, nil
	}
	if requested != "" && requested != c.ID {
		return "", errs.NewAccessIsDeniedError(operation, c.Roles.Strings())
	}
	return c.ID, nil
}
