package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionStore(rdb, ttl), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t, time.Hour)

	_, ok, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "tok", "alice"))
	assert.True(t, mr.Exists("user:session:tok"))
	assert.Equal(t, time.Hour, mr.TTL("user:session:tok"))

	v, ok, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	require.NoError(t, store.Set(ctx, "tok", "bob"))
	v, _, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "bob", v)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, ok, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_Expires(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t, time.Minute)

	require.NoError(t, store.Set(ctx, "tok", "alice"))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t, time.Minute)

	require.NoError(t, mr.Set("user:session:tok", "{not json"))
	_, _, err := store.Get(ctx, "tok")
	assert.Error(t, err)
}
