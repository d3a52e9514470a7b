package singleton

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes the first violated constraint of a patch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidator returns a validator reporting json field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks a patch struct. Fields are checked in declaration order and only the first
// violation is reported, using the message registered for its json field name.
func Validate(v *validator.Validate, patch interface{}, messages map[string]string) error {
	err := v.Struct(patch)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err //nolint:wrapcheck
	}

	first := validationErrors[0]

	msg, ok := messages[first.Field()]
	if !ok {
		msg = "field '" + first.Field() + "' failed validation tag '" + first.Tag() + "'"
	}

	return &ValidationError{Field: first.Field(), Message: msg}
}
