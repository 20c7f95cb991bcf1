package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestFollowCountCacheRepository(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	ctx := context.Background()
	repo := NewFollowCountCacheRepository(rdb, 2*time.Second)

	t.Run("miss", func(t *testing.T) {
		_, err := repo.GetFollowersCount(ctx, 1)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, repo.SetFollowersCount(ctx, 1, 5))
		require.NoError(t, repo.SetFollowingCount(ctx, 1, 3))

		n, err := repo.GetFollowersCount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)

		n, err = repo.GetFollowingCount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, repo.SetFollowersCount(ctx, 2, 1))
		require.NoError(t, repo.Invalidate(ctx, 1, 2))

		_, err := repo.GetFollowersCount(ctx, 1)
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = repo.GetFollowingCount(ctx, 1)
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = repo.GetFollowersCount(ctx, 2)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, repo.SetFollowersCount(ctx, 3, 9))
		mr.FastForward(3 * time.Second)

		_, err := repo.GetFollowersCount(ctx, 3)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("server down", func(t *testing.T) {
		mr.Close()
		_, err := repo.GetFollowersCount(ctx, 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCacheMiss)
	})
}

func TestTokenRevocationRepository(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	ctx := context.Background()
	repo := NewTokenRevocationRepository(rdb)

	revoked, err := repo.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "abc", time.Minute))
	revoked, err = repo.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "expired", 0))
	revoked, err = repo.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = repo.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
