package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/schemas"
)

// Messages returned when the model call fails. Detail is only logged.
const (
	MsgEmptyModelResponse = "Internal Server Error: AI model returned an empty response."
	MsgModelFailure       = "Internal Server Error calling AI model."
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a resource that does not exist or is not visible to the caller
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrGone indicates a resource that existed but has expired
type ErrGone struct {
	Resource string
}

func (e *ErrGone) Error() string {
	return fmt.Sprintf("%s expired", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists   *ErrEmailAlreadyExists
		invalidCreds  *ErrInvalidCredentials
		pwMismatch    *ErrPasswordMismatch
		userNotFound  *ErrUserNotFound
		notFound      *ErrNotFound
		gone          *ErrGone
		validation    *ErrValidation
		schemaInvalid *schemas.ValidationError
		authErr       *auth.AuthenticationError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds), errors.As(err, &pwMismatch):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &gone):
		return http.StatusGone
	case errors.As(err, &validation), errors.As(err, &schemaInvalid):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// modelErrorMessage returns the client-facing message for a failed model call.
func modelErrorMessage(err error) string {
	if llm.IsEmptyResponse(err) {
		return MsgEmptyModelResponse
	}
	return MsgModelFailure
}

// badRequestMessage renders a validation failure in the "Bad Request: ..." form.
func badRequestMessage(err error) string {
	var validation *ErrValidation
	if errors.As(err, &validation) {
		return fmt.Sprintf("Bad Request: %s %s.", validation.Field, validation.Message)
	}
	return "Bad Request: " + err.Error()
}
