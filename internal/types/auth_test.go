//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: CreateUserRequest{Name: "John Doe", Email: "john@example.com", Password: "password123"},
		},
		{
			name:    "missing name",
			request: CreateUserRequest{Email: "john@example.com", Password: "password123"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "blank name",
			request: CreateUserRequest{Name: "   ", Email: "john@example.com", Password: "password123"},
			wantErr: true,
			errMsg:  "notblank",
		},
		{
			name:    "invalid email",
			request: CreateUserRequest{Name: "John Doe", Email: "not-an-email", Password: "password123"},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name:    "short password",
			request: CreateUserRequest{Name: "John Doe", Email: "john@example.com", Password: "short"},
			wantErr: true,
			errMsg:  "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "a@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	assert.NoError(t, (&UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "newpassword"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "short"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{NewPassword: "newpassword"}).Validate())
}

func TestLoginResponse_JSON(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	resp := LoginResponse{
		User:  &User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", CreatedAt: now, UpdatedAt: now},
		Token: "tok",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "tok", raw["token"])
	user := raw["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
}
