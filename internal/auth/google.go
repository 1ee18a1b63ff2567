package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier accepts Google-signed OIDC ID tokens issued for one audience.
type GoogleVerifier struct {
	audience string
	validate validateFunc
}

// NewGoogleVerifier creates a verifier for ID tokens minted for audience.
func NewGoogleVerifier(audience string) (*GoogleVerifier, error) {
	if audience == "" {
		return nil, fmt.Errorf("google audience is required")
	}
	return &GoogleVerifier{audience: audience, validate: idtoken.Validate}, nil
}

// Verify implements Verifier. The subject is the token's "sub" claim.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, &AuthenticationError{Reason: "empty token"}
	}

	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return Identity{}, &AuthenticationError{Reason: "invalid id token", Cause: err}
	}
	if payload.Subject == "" {
		return Identity{}, &AuthenticationError{Reason: "id token has no subject"}
	}

	identity := Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}
