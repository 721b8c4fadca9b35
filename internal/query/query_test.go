package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key, err := cache.Key(ctx, "guests", "search=ana")
	require.NoError(t, err)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []string{"ana", "antonia"}, nil
	}

	var got []string
	require.NoError(t, cache.FetchJSON(ctx, "guests", key, &got, loader))
	require.Equal(t, []string{"ana", "antonia"}, got)
	require.Equal(t, 1, calls)

	var again []string
	require.NoError(t, cache.FetchJSON(ctx, "guests", key, &again, loader))
	require.Equal(t, got, again)
	require.Equal(t, 1, calls, "second fetch must hit the cache")
}

func TestKeyIsCanonical(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	first, err := cache.Key(ctx, "guests", "search=ana", "page=2")
	require.NoError(t, err)
	second, err := cache.Key(ctx, "guests", "search=ana", "page=2")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := cache.Key(ctx, "guests", "search=bia", "page=2")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestBumpInvalidatesScope(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key, err := cache.Key(ctx, "guests")
	require.NoError(t, err)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	var value int
	require.NoError(t, cache.FetchJSON(ctx, "guests", key, &value, loader))
	require.Equal(t, 1, value)

	require.NoError(t, cache.Bump(ctx, "guests"))

	bumpedKey, err := cache.Key(ctx, "guests")
	require.NoError(t, err)
	require.NotEqual(t, key, bumpedKey)

	require.NoError(t, cache.FetchJSON(ctx, "guests", bumpedKey, &value, loader))
	require.Equal(t, 2, value, "bumped scope must reload")
}

func TestBumpDoesNotTouchOtherScopes(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	guestKey, err := cache.Key(ctx, "guests")
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx, "reservas"))

	unchanged, err := cache.Key(ctx, "guests")
	require.NoError(t, err)
	require.Equal(t, guestKey, unchanged)
}

func TestFetchJSONDiscardsStaleWrite(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key, err := cache.Key(ctx, "guests")
	require.NoError(t, err)

	// The loader simulates a mutation racing the fetch: the scope is bumped
	// while the load is in flight.
	loader := func(ctx context.Context) (any, error) {
		require.NoError(t, cache.Bump(ctx, "guests"))
		return "stale", nil
	}

	var got string
	require.NoError(t, cache.FetchJSON(ctx, "guests", key, &got, loader))
	require.Equal(t, "stale", got, "caller still receives the loaded value")

	exists := cache.client.Exists(ctx, key).Val()
	require.Zero(t, exists, "stale value must not be written back")
}

func TestNilCacheCallsLoaderDirectly(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.Key(ctx, "guests", "search=ana")
	require.NoError(t, err)
	require.Equal(t, "guests:search=ana", key)

	var got []int
	err = cache.FetchJSON(ctx, "guests", key, &got, func(context.Context) (any, error) {
		return []int{1, 2, 3}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)

	require.NoError(t, cache.Bump(ctx, "guests"))
}
