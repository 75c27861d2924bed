package kv

import (
	"context"
	"errors"
	"sync"
	"time"
)

// RedisClient defines the Redis operations RedisStore needs.
// This interface is satisfied by a thin adapter over github.com/redis/go-redis/v9.
type RedisClient interface {
	Get(ctx context.Context, key string) RedisStringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) RedisStatusCmd
	Del(ctx context.Context, keys ...string) RedisIntCmd
}

// RedisStringCmd represents a Redis string command result.
type RedisStringCmd interface {
	Result() (string, error)
}

// RedisStatusCmd represents a Redis status command result.
type RedisStatusCmd interface {
	Err() error
}

// RedisIntCmd represents a Redis int command result.
type RedisIntCmd interface {
	Err() error
}

// ErrRedisNil is returned when a key doesn't exist in Redis.
// This should match redis.Nil from go-redis.
var ErrRedisNil = errors.New("redis: nil")

// RedisStore is a Redis-backed store. Keys never expire.
type RedisStore struct {
	client RedisClient
	prefix string

	mu     sync.RWMutex
	closed bool
}

// RedisStoreOption configures RedisStore behavior.
type RedisStoreOption func(*redisStoreConfig)

type redisStoreConfig struct {
	prefix string
}

// WithRedisPrefix sets the key prefix.
// Default: "appstore:".
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(c *redisStoreConfig) {
		c.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client RedisClient, opts ...RedisStoreOption) *RedisStore {
	cfg := &redisStoreConfig{
		prefix: "appstore:",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.prefix,
	}
}

// Prefix returns the key prefix.
func (r *RedisStore) Prefix() string {
	return r.prefix
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

// Get returns the value stored under key.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if r.isClosed() {
		return "", false, ErrStoreClosed{}
	}

	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		// go-redis returns its own sentinel; compare by message as well.
		if errors.Is(err, ErrRedisNil) || err.Error() == ErrRedisNil.Error() {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if r.isClosed() {
		return ErrStoreClosed{}
	}
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete removes key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if r.isClosed() {
		return ErrStoreClosed{}
	}
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close marks the store as closed.
// The underlying client is not closed; it may be shared.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *RedisStore) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}
