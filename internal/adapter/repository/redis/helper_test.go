package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/gobooks/internal/infrastructure/metrics"
	infraredis "github.com/iho/gobooks/internal/infrastructure/redis"
)

// newTestRedisClient connects to an in-process Redis through the same
// constructor the server uses, so commands also pass the metrics hook.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	client, err := infraredis.NewClient(context.Background(), "redis://"+mr.Addr()+"/0", m)
	if err != nil {
		t.Fatalf("connecting to miniredis: %v", err)
	}

	return client, mr
}
