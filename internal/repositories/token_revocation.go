package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// TokenRevocationRepository keeps the ids of logged-out access tokens until they expire.
type TokenRevocationRepository struct {
	client *redis.Client
}

func NewTokenRevocationRepository(client *redis.Client) *TokenRevocationRepository {
	return &TokenRevocationRepository{client: client}
}

func revokedKey(jti string) string { return "revoked_token:" + jti }

// Revoke marks jti as revoked for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (r *TokenRevocationRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	err := r.client.Set(ctx, revokedKey(jti), 1, ttl).Err()

	logger.Log.Infow(
		"redis set",
		"key", revokedKey(jti),
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)

	return err
}

// IsRevoked reports whether jti was revoked.
func (r *TokenRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(jti)).Result()

	logger.Log.Infow(
		"redis exists",
		"key", revokedKey(jti),
		"result", n,
		"error", err,
	)

	return n > 0, err
}
