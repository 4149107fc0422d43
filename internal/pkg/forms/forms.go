// Package forms turns validator failures from bound form DTOs into
// per-field messages the dialog templates can render inline.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps the lower-camel form field name to a short message.
// A non-validator error yields a single "_form" entry so the dialog
// still has something to show.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_form": "Please check the highlighted fields"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldName(fe.Field())] = message(fe)
	}
	return out
}

func fieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "Passwords do not match"
	case "url":
		return "Must be a valid URL"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	default:
		return "Invalid value"
	}
}
