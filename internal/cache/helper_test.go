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

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestSetGetJSON(t *testing.T) {
	withMiniRedis(t)
	ctx := context.Background()

	in := cachedUser{ID: 1, Name: "Cached"}
	require.NoError(t, SetJSON(ctx, UserKey(1), in, time.Minute))

	var out cachedUser
	found, err := GetJSON(ctx, UserKey(1), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	found, err = GetJSON(ctx, UserKey(2), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	withMiniRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			*dest = cachedUser{ID: 7, Name: "From DB"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)

	// Second read is served from cache
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestInvalidate(t *testing.T) {
	withMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, BlogKey(3), cachedUser{ID: 3}, time.Minute))
	InvalidateBlog(ctx, 3, "some-slug-3")

	var out cachedUser
	found, err := GetJSON(ctx, BlogKey(3), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersDegradeWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, UserKey(1), &cachedUser{})
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{}, time.Minute))

	// Aside always falls through to fetch
	var out cachedUser
	called := false
	require.NoError(t, Aside(ctx, UserKey(1), &out, time.Minute, func() error {
		called = true
		out = cachedUser{ID: 1}
		return nil
	}))
	assert.True(t, called)
	assert.Equal(t, uint(1), out.ID)
}
