package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"http error", echo.NewHTTPError(http.StatusBadRequest, "bad"), http.StatusBadRequest},
		{"access denied", errs.NewAccessIsDeniedError("CreateOrder", []string{"CSR"}), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("orderId", "x"), http.StatusNotFound},
		{"invalid state", errs.NewStateIsInvalidError("order", "order already delivered"), http.StatusConflict},
		{"conflict after retries", fmt.Errorf("giving up after 3 attempts: %w", errs.NewConcurrencyConflictError("order", "x", 1)), http.StatusConflict},
		{"store unavailable", errs.NewStoreUnavailableError("load order", errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("productId"), errs.NewValueIsRequiredError("vendorId")), http.StatusUnprocessableEntity},
		{"out of range", errs.NewValueIsOutOfRangeError("limit", 500, 1, 200), http.StatusUnprocessableEntity},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "conflict", outcome(errs.NewConcurrencyConflictError("order", "x", 1)))
	assert.Equal(t, "validation", outcome(errs.NewValueIsRequiredError("vendorId")))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}

func TestOpenAPIPath(t *testing.T) {
	assert.Equal(t, "/api/v1/orders/{id}/status", openAPIPath("/api/v1/orders/:id/status"))
	assert.Equal(t, "/api/v1/orders", openAPIPath("/api/v1/orders"))
}
