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
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// withMiniredis swaps the package client for a miniredis-backed one for the
// duration of the test.
func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_CachesFetchResult(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.Name = "fetched"
			dest.Count = fetches
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", first.Name)

	// Second read is served from the cache.
	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	wantErr := assert.AnError
	var dest cachedThing
	err := Aside(ctx, "thing:err", &dest, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, "thing:err", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_Expiry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var dest cachedThing
	fetch := func() error {
		fetches++
		dest.Name = "value"
		return nil
	}

	require.NoError(t, Aside(ctx, "thing:ttl", &dest, time.Second, fetch))
	mr.FastForward(2 * time.Second)
	require.NoError(t, Aside(ctx, "thing:ttl", &dest, time.Second, fetch))
	assert.Equal(t, 2, fetches)
}

func TestInvalidate(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey("abcd1234"), cachedThing{Name: "post"}, time.Minute))
	require.NoError(t, SetJSON(ctx, ProfileKey("alice"), cachedThing{Name: "profile"}, time.Minute))
	require.NoError(t, SetJSON(ctx, FeedListKey(), cachedThing{Name: "feed"}, time.Minute))

	InvalidatePost(ctx, "abcd1234")
	InvalidateProfile(ctx, "alice")
	InvalidateFeed(ctx)

	var dest cachedThing
	for _, key := range []string{PostKey("abcd1234"), ProfileKey("alice"), FeedListKey()} {
		found, err := GetJSON(ctx, key, &dest)
		require.NoError(t, err)
		assert.False(t, found, "key %s should be gone", key)
	}
}

func TestGetJSON_NilClient(t *testing.T) {
	SetClient(nil)

	var dest cachedThing
	found, err := GetJSON(context.Background(), "anything", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(context.Background(), "anything", dest, time.Minute))
}
