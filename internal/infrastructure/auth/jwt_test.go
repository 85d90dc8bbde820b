package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)
	actor := domain.Actor{ID: "user-123", Role: domain.RoleManager}

	token, err := manager.Generate(actor)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.Actor() != actor {
		t.Fatalf("expected claims to match actor, got %+v", claims.Actor())
	}
}

func TestJWTManagerGenerateRejectsBadActors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	if _, err := manager.Generate(domain.Actor{Role: domain.RoleAdmin}); err != domain.ErrMissingActor {
		t.Fatalf("expected ErrMissingActor, got %v", err)
	}
	if _, err := manager.Generate(domain.Actor{ID: "u", Role: "root"}); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	sign := func(t *testing.T, claims auth.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		return token
	}

	expiredToken := sign(t, auth.Claims{
		Role: domain.RoleViewer,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gobooks",
			Subject:   "expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	})

	if _, err := manager.Verify(expiredToken); err != domain.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	if _, err := otherManager.Verify(expiredToken); err == nil || err == domain.ErrExpiredToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}

	tests := []struct {
		name   string
		claims auth.Claims
	}{
		{"foreign issuer", auth.Claims{Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "someone-else", Subject: "u", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}},
		{"no subject", auth.Claims{Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "gobooks", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}},
		{"unknown role", auth.Claims{Role: "root", RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "gobooks", Subject: "u", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}},
		{"no expiry", auth.Claims{Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "gobooks", Subject: "u",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Verify(sign(t, tt.claims)); err != domain.ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
