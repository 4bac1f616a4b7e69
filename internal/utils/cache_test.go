package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRevoker(t *testing.T) (*RedisRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRevoker(rdb), mr
}

func TestRevokeUntilExpiry(t *testing.T) {
	r, mr := newRevoker(t)
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "abc", time.Minute))
	revoked, err = r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeExpiredTokenStoresNothing(t *testing.T) {
	r, mr := newRevoker(t)

	require.NoError(t, r.Revoke(context.Background(), "old", 0))
	assert.False(t, mr.Exists(revokedPrefix+"old"))
}

func TestIsRevokedSurfacesRedisErrors(t *testing.T) {
	r, mr := newRevoker(t)
	mr.Close()

	_, err := r.IsRevoked(context.Background(), "abc")
	assert.Error(t, err)
}
