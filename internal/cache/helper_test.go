package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	in := cachedThing{ID: 1, Content: "hello"}
	require.NoError(t, SetJSON(ctx, PostKey(1), in, time.Minute))

	var out cachedThing
	found, err := GetJSON(ctx, PostKey(1), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSON_Miss(t *testing.T) {
	setupMiniredis(t)

	var out cachedThing
	found, err := GetJSON(context.Background(), PostKey(42), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_FetchesOnMissThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Content = "from db"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, PostKey(7), &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from db", first.Content)

	// Second read is served from Redis without hitting the fetcher.
	var second cachedThing
	require.NoError(t, Aside(ctx, PostKey(7), &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from db", second.Content)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	setupMiniredis(t)

	var out cachedThing
	err := Aside(context.Background(), PostKey(8), &out, time.Minute, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(1), cachedThing{ID: 1}, time.Minute))
	Invalidate(ctx, PostKey(1))
	assert.False(t, mr.Exists(PostKey(1)))
}

func TestNilClientDegradesToPassThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(1), cachedThing{ID: 1}, time.Minute))

	var out cachedThing
	found, err := GetJSON(ctx, PostKey(1), &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Aside must always fall through to the fetcher.
	fetched := false
	require.NoError(t, Aside(ctx, PostKey(1), &out, time.Minute, func() error {
		fetched = true
		return nil
	}))
	assert.True(t, fetched)

	// Invalidation is a no-op rather than a panic.
	Invalidate(ctx, PostKey(1))
}
