package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meaigood001/panda-quantflow/pkg/ports"
)

func TestCacheContract(t *testing.T) {
	ports.RunCatalogCacheContract(t, NewCache())
}

func TestCacheCopiesPayload(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	payload := []byte("original")
	require.NoError(t, cache.Set(ctx, payload))
	payload[0] = 'X'

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("original"), got)

	// Mutating the returned slice does not poison the cache.
	got[0] = 'Y'
	again, _, _ := cache.Get(ctx)
	assert.Equal(t, []byte("original"), again)
}
