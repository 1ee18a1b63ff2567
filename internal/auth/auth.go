// Package auth verifies bearer credentials and resolves them to a subject.
package auth

import (
	"context"
	"fmt"
)

// Identity is the verified principal behind a bearer credential.
type Identity struct {
	Subject string
	Email   string
}

// Verifier resolves a bearer token to an Identity.
// Implementations return an *AuthenticationError when the token is rejected.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// AuthenticationError reports a credential that could not be verified.
type AuthenticationError struct {
	Reason string
	Cause  error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}
