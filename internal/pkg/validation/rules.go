package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their `form` tag name, so
// errors line up with the multipart field names clients send.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// RegisterMembership adds a tag that accepts empty strings (left to
// `required`) and strings for which allowed returns true.
func RegisterMembership(v *validator.Validate, tag string, allowed func(string) bool) error {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || allowed(s)
	})
	if err != nil {
		return fmt.Errorf("failed to register %s rule: %w", tag, err)
	}
	return nil
}

// MustRegisterMembership is RegisterMembership for package initialisation.
func MustRegisterMembership(v *validator.Validate, tag string, allowed func(string) bool) {
	if err := RegisterMembership(v, tag, allowed); err != nil {
		panic(err)
	}
}

// FormatFieldError creates a human-readable message for rules without a
// dedicated message.
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " is not a recognised option"
	}
}
