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

type snapshot struct {
	Total float64  `json:"total"`
	Tags  []string `json:"tags"`
}

func newStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *JSONStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewJSONStore(client, "test", ttl)
}

func TestJSONStoreSetGetDelete(t *testing.T) {
	mr, store := newStore(t, time.Minute)
	ctx := context.Background()
	key := store.Key("dashboard", "sess-1")
	assert.Equal(t, "test:dashboard:sess-1", key)

	var out snapshot
	assert.ErrorIs(t, store.Get(ctx, key, &out), ErrMiss)

	require.NoError(t, store.Set(ctx, key, snapshot{Total: 12.5, Tags: []string{"a"}}))
	require.NoError(t, store.Get(ctx, key, &out))
	assert.Equal(t, snapshot{Total: 12.5, Tags: []string{"a"}}, out)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, store.Get(ctx, key, &out), ErrMiss)

	require.NoError(t, store.Set(ctx, key, snapshot{Total: 1}))
	require.NoError(t, store.Delete(ctx, key))
	assert.ErrorIs(t, store.Get(ctx, key, &out), ErrMiss)
}

func TestNilStoreIsAlwaysMiss(t *testing.T) {
	var store *JSONStore
	var out snapshot
	assert.ErrorIs(t, store.Get(context.Background(), "k", &out), ErrMiss)
	assert.NoError(t, store.Set(context.Background(), "k", out))
}

func TestNewPingsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	client, err := New(context.Background(), Options{Addr: mr.Addr(), Password: "s3cret"})
	require.NoError(t, err)
	_ = client.Close()

	_, err = New(context.Background(), Options{Addr: mr.Addr(), Password: "wrong"})
	assert.Error(t, err)
}
