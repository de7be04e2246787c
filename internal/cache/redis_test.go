package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/logger"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "content", logger.NewNop()), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "snapshot", payload{Name: "posts", Count: 3}, time.Hour))

	var got payload
	found, err := store.GetJSON(ctx, "snapshot", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "posts", Count: 3}, got)
}

func TestRedisStoreMiss(t *testing.T) {
	store, _ := newTestStore(t)

	var got payload
	found, err := store.GetJSON(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "snapshot", payload{Name: "posts"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got payload
	found, err := store.GetJSON(ctx, "snapshot", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreCorruptEntryIsAMiss(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("content:snapshot", "{not json"))

	var got payload
	found, err := store.GetJSON(context.Background(), "snapshot", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "snapshot", payload{Name: "posts"}, time.Hour))
	require.NoError(t, store.Delete(ctx, "snapshot"))

	var got payload
	found, err := store.GetJSON(ctx, "snapshot", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "snapshot", payload{Name: "posts", Count: 1}, time.Hour))

	var got payload
	found, err := store.GetJSON(ctx, "snapshot", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got.Count)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "snapshot", payload{Name: "posts"}, time.Minute))
	now = now.Add(2 * time.Minute)

	var got payload
	found, err := store.GetJSON(ctx, "snapshot", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
