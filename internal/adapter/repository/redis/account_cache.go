package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultAccountCacheTTL = time.Hour

// AccountCache implements usecase.AccountCache using Redis.
// Account codes are immutable once created, so entries only expire to
// bound memory.
type AccountCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewAccountCache creates a new AccountCache. A non-positive ttl uses one hour.
func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	if ttl <= 0 {
		ttl = defaultAccountCacheTTL
	}

	return &AccountCache{
		client: client,
		prefix: "gobooks:account:code:",
		ttl:    ttl,
	}
}

// GetAccountID returns the cached id for code, or "" on a miss.
func (c *AccountCache) GetAccountID(ctx context.Context, code string) (string, error) {
	id, err := c.client.Get(ctx, c.prefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	return id, err
}

// SetAccountID caches the id of code.
func (c *AccountCache) SetAccountID(ctx context.Context, code, id string) error {
	return c.client.Set(ctx, c.prefix+code, id, c.ttl).Err()
}
