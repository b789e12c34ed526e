package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo.Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Validate checks i against its validate struct tags.
func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// validationFields converts validator errors into field -> message, keyed by
// the JSON path below the request root, e.g. "lineItems[0].quantity".
func validationFields(ve validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(ve))
	for _, e := range ve {
		name := e.Namespace()
		if _, rest, ok := strings.Cut(name, "."); ok {
			name = rest
		}
		fields[name] = fieldMessage(e)
	}
	return fields
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must contain at least %s entries", e.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}
