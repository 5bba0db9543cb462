// internal/adapters/redis_adapter/cache_test.go
package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/yfarouk/dealstack-be/internal/adapters/redis_adapter"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/test/helpers"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*helpers.TestRedis, ports.CacheRepository) {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, 5*time.Minute, helpers.TestLogger())
	return tr, cache
}

func TestCache_SetAndGet(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	want := cachedValue{Name: "Galaxy S23", Count: 3}
	require.NoError(t, cache.Set(ctx, "devices:test", want))

	var got cachedValue
	require.NoError(t, cache.Get(ctx, "devices:test", &got))
	assert.Equal(t, want, got)
}

func TestCache_Get_Miss(t *testing.T) {
	_, cache := newTestCache(t)

	var got cachedValue
	err := cache.Get(context.Background(), "missing", &got)

	require.Error(t, err)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_SetWithTTL_Expires(t *testing.T) {
	tr, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetWithTTL(ctx, "short", cachedValue{Name: "x"}, time.Second))

	tr.Server.FastForward(2 * time.Second)

	var got cachedValue
	err := cache.Get(ctx, "short", &got)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_Delete(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", 1))
	require.NoError(t, cache.Set(ctx, "b", 2))

	require.NoError(t, cache.Delete(ctx, "a", "b"))

	exists, err := cache.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting nothing is a no-op
	require.NoError(t, cache.Delete(ctx))
}

func TestCache_DeletePattern(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "insights:dealer-1:market:Samsung", 1))
	require.NoError(t, cache.Set(ctx, "insights:dealer-1:top-models:10", 2))
	require.NoError(t, cache.Set(ctx, "insights:dealer-2:market:Apple", 3))

	require.NoError(t, cache.DeletePattern(ctx, "insights:dealer-1:*"))

	exists, err := cache.Exists(ctx, "insights:dealer-1:market:Samsung")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = cache.Exists(ctx, "insights:dealer-2:market:Apple")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCache_GetOrSet(t *testing.T) {
	t.Run("miss_runs_fetch_and_caches", func(t *testing.T) {
		_, cache := newTestCache(t)
		ctx := context.Background()

		calls := 0
		fetch := func() (interface{}, error) {
			calls++
			return cachedValue{Name: "fetched", Count: calls}, nil
		}

		var got cachedValue
		require.NoError(t, cache.GetOrSet(ctx, "k", &got, fetch, time.Minute))
		assert.Equal(t, "fetched", got.Name)
		assert.Equal(t, 1, calls)

		// Second call is served from cache
		var again cachedValue
		require.NoError(t, cache.GetOrSet(ctx, "k", &again, fetch, time.Minute))
		assert.Equal(t, 1, calls)
		assert.Equal(t, got, again)
	})

	t.Run("fetch_error_propagates", func(t *testing.T) {
		_, cache := newTestCache(t)

		var got cachedValue
		err := cache.GetOrSet(context.Background(), "k2", &got, func() (interface{}, error) {
			return nil, errors.New("db down")
		}, time.Minute)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestCache_Increment(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	n, err := cache.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = cache.IncrementBy(ctx, "counter", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
}

func TestCache_SetNX(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	ok, err := cache.SetNX(ctx, "lock", "holder-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.SetNX(ctx, "lock", "holder-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ExpireAndTTL(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v"))
	require.NoError(t, cache.Expire(ctx, "k", time.Minute))

	ttl, err := cache.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestCache_FlushAndPing(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))

	require.NoError(t, cache.Set(ctx, "k", "v"))
	require.NoError(t, cache.Flush(ctx))

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuildKey(t *testing.T) {
	key := redis_a.BuildKey(redis_a.PrefixInsights, "dealer-1", "market", "Samsung")
	assert.Equal(t, "insights:dealer-1:market:Samsung", key)
}
