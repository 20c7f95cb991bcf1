package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// FollowCountCacheRepository caches follower and following counts in Redis.
type FollowCountCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewFollowCountCacheRepository(client *redis.Client, expiration time.Duration) *FollowCountCacheRepository {
	return &FollowCountCacheRepository{client: client, exp: expiration}
}

func followersKey(userID int64) string { return fmt.Sprintf("followers_count:%d", userID) }
func followingKey(userID int64) string { return fmt.Sprintf("following_count:%d", userID) }

func (r *FollowCountCacheRepository) GetFollowersCount(ctx context.Context, userID int64) (int64, error) {
	return r.get(ctx, followersKey(userID))
}

func (r *FollowCountCacheRepository) SetFollowersCount(ctx context.Context, userID, n int64) error {
	return r.set(ctx, followersKey(userID), n)
}

func (r *FollowCountCacheRepository) GetFollowingCount(ctx context.Context, userID int64) (int64, error) {
	return r.get(ctx, followingKey(userID))
}

func (r *FollowCountCacheRepository) SetFollowingCount(ctx context.Context, userID, n int64) error {
	return r.set(ctx, followingKey(userID), n)
}

// Invalidate drops both counters of every given user.
func (r *FollowCountCacheRepository) Invalidate(ctx context.Context, userIDs ...int64) error {
	keys := make([]string, 0, 2*len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, followersKey(id), followingKey(id))
	}
	if len(keys) == 0 {
		return nil
	}

	n, err := r.client.Del(ctx, keys...).Result()

	logger.Log.Infow(
		"redis del",
		"keys", keys,
		"result", n,
		"error", err,
	)

	return err
}

func (r *FollowCountCacheRepository) get(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"redis get",
			"key", key,
			"result", val,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, err
	}

	n, err := strconv.ParseInt(val, 10, 64)

	logger.Log.Infow(
		"redis get",
		"key", key,
		"value", val,
		"result", n,
		"error", err,
	)

	return n, err
}

func (r *FollowCountCacheRepository) set(ctx context.Context, key string, n int64) error {
	err := r.client.Set(ctx, key, n, r.exp).Err()

	logger.Log.Infow(
		"redis set",
		"key", key,
		"value", n,
		"result", "ok",
		"error", err,
	)

	return err
}
