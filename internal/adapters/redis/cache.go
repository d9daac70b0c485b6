// Package redis provides a Redis-backed ports.CatalogCache so multiple API
// instances share one rendered catalog snapshot.
package redis

import (
	"context"
	"errors"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Cache implements ports.CatalogCache on a Redis key with TTL.
type Cache struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithKey sets the Redis key holding the snapshot.
func WithKey(key string) Option {
	return func(c *Cache) {
		c.key = key
	}
}

// WithTTL sets the snapshot expiry. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// New creates a Redis cache with its own client.
func New(address, password string, db int, opts ...Option) *Cache {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		key:    "quantflow:catalog",
		ttl:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached payload and whether one was present.
func (c *Cache) Get(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores a payload under the configured key and TTL.
func (c *Cache) Set(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, c.key, payload, c.ttl).Err()
}

// Invalidate drops the cached payload.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
