package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FormValidator plugs go-playground/validator into echo.
type FormValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their form tag name.
func New() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &FormValidator{validate: v}
}

// Validate implements echo.Validator. It returns FieldErrors for rule
// violations and any other error unchanged.
func (v *FormValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := make(FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		// first failing rule wins
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = getErrorMessage(fe)
	}
	return out
}

// AsFieldErrors extracts FieldErrors from err, if any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
