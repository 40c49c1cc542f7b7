package kv

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis connection. Keys map directly to
// Redis string keys with no expiry; durability follows the Redis server's
// own persistence configuration.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using a redis:// or rediss:// URL.
func NewRedisStore(redisURL string, tlsInsecure bool) (*RedisStore, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	if opt.TLSConfig != nil && tlsInsecure {
		opt.TLSConfig.InsecureSkipVerify = true
	} else if opt.TLSConfig == nil && tlsInsecure {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &RedisStore{client: redis.NewClient(opt)}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Read returns the document stored under key, or nil when absent.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Write stores the document under key with no expiry.
func (s *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Ping verifies the connection. Used for health checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Compile-time check that RedisStore implements Store
var _ Store = (*RedisStore)(nil)
