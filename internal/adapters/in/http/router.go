package http

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// swaggerDoc serves the OpenAPI document through the swag registry.
type swaggerDoc struct {
	json string
}

// ReadDoc returns the OpenAPI document as JSON.
func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerSwagger sync.Once

// NewRouter builds the echo instance serving the API, /health, /metrics and
// the Swagger UI at /swagger/index.html.
func NewRouter(server ServerInterface, doc *openapi3.T, metrics *Metrics, logger *slog.Logger) (*echo.Echo, error) {
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(docJSON)})
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(metrics.middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", callerMiddleware(), openAPIValidator(doc))
	RegisterHandlers(api, server)

	return e, nil
}
