package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// readinessTimeout bounds all dependency pings of one readiness check.
const readinessTimeout = 5 * time.Second

// HealthCheck pings one dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler creates a HealthHandler probing PostgreSQL and, when a
// client is given, Redis.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	checks := []HealthCheck{{Name: "postgres", Ping: pool.Ping}}
	if redisClient != nil {
		checks = append(checks, HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return NewHealthHandlerWithChecks(checks...)
}

// NewHealthHandlerWithChecks creates a HealthHandler running checks.
func NewHealthHandlerWithChecks(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if every dependency answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := map[string]string{"status": "ready"}
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, check.Name+" unhealthy", err)
			return
		}
		status[check.Name] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
