package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/iho/gobooks/internal/infrastructure/config"
)

func TestNewTokenVerifier(t *testing.T) {
	if v := newTokenVerifier(&config.Config{AuthEnabled: false, JWTSecret: "secret"}); v != nil {
		t.Fatalf("expected no verifier when auth is disabled, got %T", v)
	}

	if v := newTokenVerifier(&config.Config{AuthEnabled: true, JWTSecret: "secret", JWTExpiration: time.Hour}); v == nil {
		t.Fatalf("expected a verifier when auth is enabled")
	}
}

func TestNewRateLimiter(t *testing.T) {
	if rl := newRateLimiter(&config.Config{RateLimitRPS: 0}, nil); rl != nil {
		t.Fatalf("expected rate limiting to be disabled for RATE_LIMIT_RPS=0")
	}

	if rl := newRateLimiter(&config.Config{RateLimitRPS: 5, RateLimitBurst: 0}, nil); rl == nil {
		t.Fatalf("expected a rate limiter for RATE_LIMIT_RPS=5")
	}
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{
		HTTPPort:         "9090",
		HTTPReadTimeout:  5 * time.Second,
		HTTPWriteTimeout: 10 * time.Second,
		HTTPIdleTimeout:  time.Minute,
	}

	srv := newHTTPServer(cfg, http.NotFoundHandler())

	if srv.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %s", srv.Addr)
	}
	if srv.ReadTimeout != 5*time.Second || srv.WriteTimeout != 10*time.Second || srv.IdleTimeout != time.Minute {
		t.Fatalf("timeouts not copied from config: %+v", srv)
	}
}
