// Package memory provides an in-process ports.CatalogCache. Used as the
// default cache for single-instance deployments and in tests.
package memory

import (
	"context"
	"sync"
)

// Cache holds one catalog snapshot in memory.
type Cache struct {
	mu      sync.RWMutex
	payload []byte
	set     bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached payload and whether one was present.
func (c *Cache) Get(ctx context.Context) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set {
		return nil, false, nil
	}
	out := make([]byte, len(c.payload))
	copy(out, c.payload)
	return out, true, nil
}

// Set stores a payload, replacing any previous one.
func (c *Cache) Set(ctx context.Context, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = stored
	c.set = true
	return nil
}

// Invalidate drops the cached payload.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
	c.set = false
	return nil
}
