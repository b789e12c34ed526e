package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// LoadOpenAPI parses and validates an OpenAPI 3 document.
func LoadOpenAPI(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// openAPIValidator checks each request against the operation registered for
// its echo route. Routes missing from the document are passed through.
func openAPIValidator(doc *openapi3.T) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := openAPIPath(c.Path())
			pathItem := doc.Paths.Value(path)
			if pathItem == nil {
				return next(c)
			}
			operation := pathItem.GetOperation(c.Request().Method)
			if operation == nil {
				return next(c)
			}

			pathParams := make(map[string]string, len(c.ParamNames()))
			for _, name := range c.ParamNames() {
				pathParams[name] = c.Param(name)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams,
				Route: &routers.Route{
					Spec:      doc,
					Path:      path,
					PathItem:  pathItem,
					Method:    c.Request().Method,
					Operation: operation,
				},
				Options: options,
			}
			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, requestErrorMessage(err)).SetInternal(err)
			}
			return next(c)
		}
	}
}

// openAPIPath turns "/orders/:id" into "/orders/{id}".
func openAPIPath(echoPath string) string {
	segments := strings.Split(echoPath, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func requestErrorMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Error()
	}
	return err.Error()
}
