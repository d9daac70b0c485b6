package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCatalogCacheContract runs a suite of tests to verify that a
// CatalogCache implementation adheres to the defined interface contract.
func RunCatalogCacheContract(t *testing.T, cache CatalogCache) {
	ctx := context.Background()

	t.Run("Get Empty", func(t *testing.T) {
		_, ok, err := cache.Get(ctx)
		require.NoError(t, err, "Get on an empty cache should not return error")
		assert.False(t, ok, "Get on an empty cache should report a miss")
	})

	t.Run("Set and Get", func(t *testing.T) {
		payload := []byte(`{"catalog":[]}`)
		require.NoError(t, cache.Set(ctx, payload))

		got, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok, "Get after Set should report a hit")
		assert.Equal(t, payload, got)
	})

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, []byte("first")))
		require.NoError(t, cache.Set(ctx, []byte("second")))

		got, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, []byte("payload")))
		require.NoError(t, cache.Invalidate(ctx))

		_, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "Get after Invalidate should report a miss")
	})
}
