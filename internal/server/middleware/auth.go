// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/sirupsen/logrus"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityKey is the context key for storing the verified identity.
const identityKey ContextKey = "identity"

// Messages returned to clients. Verification detail is only logged.
const (
	MsgMissingToken = "Unauthorized: Missing token."
	MsgInvalidToken = "Unauthorized: Invalid token."
)

// AuthMiddleware rejects requests without a verifiable bearer credential and
// stores the verified identity on the request context.
//
// A missing header, a non-Bearer scheme or an empty token yields 401; a token
// the verifier rejects yields 403.
func AuthMiddleware(verifier auth.Verifier, logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, MsgMissingToken)
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.WithError(err).WithField("path", r.URL.Path).Warn("bearer token rejected")
				writeError(w, http.StatusForbidden, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the verified identity stored by AuthMiddleware.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok && identity.Subject != ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
