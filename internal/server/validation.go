package server

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validationError converts a validator failure into an *ErrValidation
// describing the first offending field.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &ErrValidation{Field: fe.Field(), Message: tagMessage(fe)}
	}
	return &ErrValidation{Field: "body", Message: "is invalid"}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
