package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string

	// Backoff controls connection retries; zero means DefaultBackoff.
	Backoff Backoff
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying with backoff while the server is unreachable.
func NewRedisCache(ctx context.Context, opts RedisOptions) (Cache, error) {
	if opts.Backoff == (Backoff{}) {
		opts.Backoff = DefaultBackoff
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	err := retryWithBackoff(ctx, opts.Backoff, func() error {
		return Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w: %w", opts.Addr, ErrUnavailable, err)
	}
	return NewRedisCacheFromClient(client, opts.Prefix), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, prefix string) Cache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value; redis.Nil is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with ttl; non-positive ttl keeps it forever.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
