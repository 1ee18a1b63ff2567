package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{}, http.StatusNotFound},
		{"not found", &ErrNotFound{Resource: "resume"}, http.StatusNotFound},
		{"gone", &ErrGone{Resource: "token"}, http.StatusGone},
		{"validation", &ErrValidation{Field: "text", Message: "is required"}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"authentication", &auth.AuthenticationError{Reason: "bad"}, http.StatusForbidden},
		{"wrapped", fmt.Errorf("outer: %w", &ErrNotFound{Resource: "resume"}), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestModelErrorMessage(t *testing.T) {
	assert.Equal(t, MsgEmptyModelResponse, modelErrorMessage(&llm.EmptyResponseError{Model: "m"}))
	assert.Equal(t, MsgEmptyModelResponse, modelErrorMessage(fmt.Errorf("call: %w", &llm.EmptyResponseError{})))
	assert.Equal(t, MsgModelFailure, modelErrorMessage(&llm.GatewayError{Provider: llm.ProviderGemini, Cause: errors.New("x")}))
}

func TestBadRequestMessage(t *testing.T) {
	assert.Equal(t, "Bad Request: promptText is required.", badRequestMessage(&ErrValidation{Field: "promptText", Message: "is required"}))
	assert.Equal(t, "Bad Request: boom", badRequestMessage(errors.New("boom")))
}
