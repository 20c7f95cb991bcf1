package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// FollowWriteRepository mutates the follower relation.
type FollowWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowWriteRepository(db *sqlx.DB, txGetter TxGetter) *FollowWriteRepository {
	return &FollowWriteRepository{db: db, txGetter: txGetter}
}

// Follow adds the follower -> followed edge. Adding an existing edge is a no-op.
func (r *FollowWriteRepository) Follow(ctx context.Context, followerID, followedID int64) error {
	const query = `
		INSERT INTO followers (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	return r.exec(ctx, query, followerID, followedID)
}

// Unfollow removes the follower -> followed edge. Removing a missing edge is a no-op.
func (r *FollowWriteRepository) Unfollow(ctx context.Context, followerID, followedID int64) error {
	const query = `DELETE FROM followers WHERE follower_id = $1 AND followed_id = $2`
	return r.exec(ctx, query, followerID, followedID)
}

func (r *FollowWriteRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	return err
}

// FollowReadRepository answers questions about the follower relation.
type FollowReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowReadRepository(db *sqlx.DB, txGetter TxGetter) *FollowReadRepository {
	return &FollowReadRepository{db: db, txGetter: txGetter}
}

// IsFollowing reports whether the follower -> followed edge exists.
func (r *FollowReadRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM followers WHERE follower_id = $1 AND followed_id = $2
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &exists, query, followerID, followedID)

	logQuery(query, []any{followerID, followedID}, exists, err)

	return exists, err
}

// FollowersCount returns how many users follow userID.
func (r *FollowReadRepository) FollowersCount(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM followers WHERE followed_id = $1`
	return r.count(ctx, query, userID)
}

// FollowingCount returns how many users userID follows.
func (r *FollowReadRepository) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM followers WHERE follower_id = $1`
	return r.count(ctx, query, userID)
}

func (r *FollowReadRepository) count(ctx context.Context, query string, userID int64) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &n, query, userID)

	logQuery(query, []any{userID}, n, err)

	return n, err
}
