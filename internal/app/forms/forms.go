package forms

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form DTOs bound from POSTed HTML forms. Validation failures come back as a
// field→message map keyed by the form field name, so templates can render
// inline errors next to the offending input.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the form field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors translates validator failures into user-facing messages
func fieldErrors(err error) map[string]string {
	if err == nil {
		return map[string]string{}
	}

	errs := map[string]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "Invalid form submission."
		return errs
	}

	for _, e := range validationErrs {
		errs[e.Field()] = fieldMessage(e)
	}
	return errs
}

// fieldMessage creates a human-readable message for a single failed rule
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Must be at least " + e.Param() + " characters long."
	case "max":
		return "Must be at most " + e.Param() + " characters long."
	case "gte":
		return "Must be " + e.Param() + " or later."
	case "lte":
		return "Must be " + e.Param() + " or earlier."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "eqfield":
		return "The two passwords do not match."
	default:
		return "Invalid value."
	}
}
