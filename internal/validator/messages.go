package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// fieldLabels are the human names used in messages; unknown fields use the struct field name.
var fieldLabels = map[string]string{
	"fullName": "Name",
	"email":    "Email",
	"password": "Password",
}

func labelFor(fe validator.FieldError) string {
	if label, ok := fieldLabels[fe.Field()]; ok {
		return label
	}
	return fe.StructField()
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "email" {
			return "Invalid email"
		}
		return fmt.Sprintf("%s cannot be empty", labelFor(fe))
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", labelFor(fe), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%ss do not match", fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", labelFor(fe))
	}
}
