package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meaigood001/panda-quantflow/internal/adapters/redis"
	"github.com/meaigood001/panda-quantflow/pkg/ports"
)

func newTestClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisCache_Contract(t *testing.T) {
	cache := redis.NewFromClient(newTestClient(t))
	ports.RunCatalogCacheContract(t, cache)
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	cache := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []byte(`{"catalog":[]}`)))

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// miniredis advances time manually.
	mr.FastForward(2 * time.Second)

	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "payload should expire after the TTL")
}

func TestRedisCache_CustomKey(t *testing.T) {
	client := newTestClient(t)
	cache := redis.NewFromClient(client, redis.WithKey("quantflow:test"))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []byte("payload")))

	got, err := client.Get(ctx, "quantflow:test").Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}
