package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

// NewClient creates a new Redis client. When m is not nil every command is
// counted in m.RedisOperations and failures in m.RedisErrors.
func NewClient(ctx context.Context, redisURL string, m *metrics.Metrics) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if m != nil {
		client.AddHook(metricsHook{metrics: m})
	}

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

type metricsHook struct {
	metrics *metrics.Metrics
}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		h.observe(cmd.Name(), err)
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		for _, cmd := range cmds {
			h.observe(cmd.Name(), cmd.Err())
		}
		return err
	}
}

func (h metricsHook) observe(operation string, err error) {
	h.metrics.RedisOperations.WithLabelValues(operation).Inc()
	// A miss is not a failure.
	if err != nil && !errors.Is(err, redis.Nil) {
		h.metrics.RedisErrors.WithLabelValues(operation).Inc()
	}
}
