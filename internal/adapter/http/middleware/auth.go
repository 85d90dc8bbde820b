package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/auth"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ActorContextKey is the context key for the authenticated actor
	ActorContextKey ContextKey = "actor"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the token's
// actor in the request context. Only roles that may post are let through
// on write methods.
func Auth(verifier TokenVerifier, m *metrics.Metrics) func(http.Handler) http.Handler {
	fail := func(w http.ResponseWriter, status int, reason, message string) {
		if m != nil {
			m.AuthFailures.WithLabelValues(reason).Inc()
		}
		writeJSONError(w, status, message)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				fail(w, http.StatusUnauthorized, "missing_header", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				fail(w, http.StatusUnauthorized, "malformed_header", "invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired_token"
				}
				fail(w, http.StatusUnauthorized, reason, "invalid or expired token")
				return
			}

			actor := claims.Actor()
			if isWrite(r.Method) && !actor.Role.CanPost() {
				fail(w, http.StatusForbidden, "insufficient_role", domain.ErrInsufficientRole.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ActorContextKey, actor)
}

// ActorFromContext extracts the authenticated actor from context
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ActorContextKey).(domain.Actor)
	return actor, ok
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
