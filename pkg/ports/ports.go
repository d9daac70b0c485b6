package ports

import "context"

// CatalogCache holds one serialized catalog snapshot so repeated editor
// loads skip rebuilding the tree. Implementations decide the storage
// backend (in-process memory, Redis) and expiry policy.
type CatalogCache interface {
	// Get returns the cached payload and whether one was present.
	Get(ctx context.Context) ([]byte, bool, error)

	// Set stores a payload, replacing any previous one.
	Set(ctx context.Context, payload []byte) error

	// Invalidate drops the cached payload, if any.
	Invalidate(ctx context.Context) error
}
