package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewRedisCache(rdb, "wayfarer:")
	ctx := context.Background()

	var got sample
	require.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", sample{Name: "Japan", Tags: []string{"Food"}}, time.Minute))
	assert.True(t, mr.Exists("wayfarer:k"))

	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "Japan", got.Name)
	assert.Equal(t, []string{"Food"}, got.Tags)

	mr.FastForward(2 * time.Minute)
	require.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", sample{Name: "Peru"}, time.Hour))

	var got sample
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "Peru", got.Name)

	now = now.Add(2 * time.Hour)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestOAuthStatesSingleUse(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewOAuthStates()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "abc", "/dashboard", 5*time.Minute))

	redirect, ok := s.Consume(ctx, "abc")
	require.True(t, ok)
	assert.Equal(t, "/dashboard", redirect)

	_, ok = s.Consume(ctx, "abc")
	assert.False(t, ok, "state must not be reusable")
}

func TestOAuthStatesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewOAuthStates()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "abc", "/", time.Minute))
	now = now.Add(2 * time.Minute)

	_, ok := s.Consume(ctx, "abc")
	assert.False(t, ok)
}

func TestOAuthStatesBounded(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewOAuthStates()
	s.max = 2
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "a", "/", time.Minute))
	require.NoError(t, s.Set(ctx, "b", "/", 10*time.Minute))
	assert.ErrorIs(t, s.Set(ctx, "c", "/", time.Minute), ErrStateStoreFull)

	now = now.Add(2 * time.Minute)
	require.NoError(t, s.Set(ctx, "c", "/", time.Minute), "expired entries make room")
	assert.Len(t, s.data, 2)

	_, ok := s.Consume(ctx, "b")
	assert.True(t, ok)
}

func TestRedisStatesSingleUseAndExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStates(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "state:")

	require.NoError(t, s.Set(ctx, "abc", "/trips", 5*time.Minute))
	assert.True(t, mr.Exists("state:abc"))

	redirect, ok := s.Consume(ctx, "abc")
	require.True(t, ok)
	assert.Equal(t, "/trips", redirect)
	assert.False(t, mr.Exists("state:abc"))

	_, ok = s.Consume(ctx, "abc")
	assert.False(t, ok, "state must not be reusable")

	require.NoError(t, s.Set(ctx, "old", "/", time.Minute))
	mr.FastForward(2 * time.Minute)
	_, ok = s.Consume(ctx, "old")
	assert.False(t, ok)
}
