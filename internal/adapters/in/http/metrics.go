package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the HTTP adapter.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	commandOutcomes *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fulfillment",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fulfillment",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		commandOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fulfillment",
				Name:      "order_operations_total",
				Help:      "Fulfillment operations by name and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		m.requestsTotal,
		m.requestDuration,
		m.commandOutcomes,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveOperation counts one fulfillment operation by error class.
func (m *Metrics) ObserveOperation(operation string, err error) {
	m.commandOutcomes.WithLabelValues(operation, outcome(err)).Inc()
}

// middleware records request count and latency. Handler errors are rendered
// here so the final status code is known.
func (m *Metrics) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrAccessIsDenied):
		return "access_denied"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrStateIsInvalid):
		return "invalid_state"
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return "conflict"
	case errors.Is(err, errs.ErrStoreUnavailable):
		return "store_unavailable"
	case statusFor(err) == http.StatusUnprocessableEntity:
		return "validation"
	default:
		return "error"
	}
}
