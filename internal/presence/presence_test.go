package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, "visa", ttl), mr
}

func TestOnlineOfflineRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	assert.False(t, s.IsOnline(ctx, "u1"))

	require.NoError(t, s.Online(ctx, "u1"))
	assert.True(t, s.IsOnline(ctx, "u1"))
	assert.False(t, s.IsOnline(ctx, "u2"))

	require.NoError(t, s.Offline(ctx, "u1"))
	assert.False(t, s.IsOnline(ctx, "u1"))
}

func TestMarkerExpiresAfterTTL(t *testing.T) {
	s, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Online(ctx, "u1"))
	assert.True(t, s.IsOnline(ctx, "u1"))

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, s.IsOnline(ctx, "u1"), "crashed process must not look online forever")
}

func TestKeysArePrefixed(t *testing.T) {
	s, mr := newTestStore(t, 0)
	require.NoError(t, s.Online(context.Background(), "u1"))
	assert.True(t, mr.Exists("visa:presence:u1"))
}
