package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a shared Redis instance. This is the
// deployment configuration: every service in the fleet points at the same
// Redis and coordinates through it alone.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store. The prefix keeps
// session keys apart from anything else living in the same Redis; pass ""
// for raw token keys.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStore) key(token string) string {
	if r.prefix == "" {
		return token
	}
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// Set implements Store.Set with Redis SET ... EX, a single atomic write.
func (r *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get implements Store.Get. Redis expires keys natively, so a missing key
// already accounts for TTL expiry.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get session: %w", err)
	}
	return val, true, nil
}
