package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

const postColumns = `p.id, p.body, p.timestamp, p.user_id, u.username AS author_username, u.email AS author_email`

// PostWriteRepository stores new posts.
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostWriteRepository(db *sqlx.DB, txGetter TxGetter) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a post stamped with the current time and returns it with its author.
func (r *PostWriteRepository) Create(ctx context.Context, userID int64, body string) (*models.PostDB, error) {
	const query = `
		WITH p AS (
			INSERT INTO posts (body, timestamp, user_id)
			VALUES ($1, NOW(), $2)
			RETURNING id, body, timestamp, user_id
		)
		SELECT ` + postColumns + `
		FROM p
		JOIN users u ON u.id = p.user_id
	`

	var post models.PostDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, body, userID)

	logQuery(query, []any{body, userID}, post.ID, err)

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// PostReadRepository lists posts newest first. Every list method takes a
// limit and an offset; callers ask for one row more than a page to learn
// whether a next page exists.
type PostReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostReadRepository(db *sqlx.DB, txGetter TxGetter) *PostReadRepository {
	return &PostReadRepository{db: db, txGetter: txGetter}
}

// ListFeed returns posts by the users userID follows plus userID's own posts.
// The viewer filter sits in the join condition so each post appears once.
func (r *PostReadRepository) ListFeed(ctx context.Context, userID int64, limit, offset int) ([]models.PostDB, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN followers f ON f.followed_id = p.user_id AND f.follower_id = $1
		WHERE f.follower_id IS NOT NULL OR p.user_id = $1
		ORDER BY p.timestamp DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

// ListAll returns posts by every user.
func (r *PostReadRepository) ListAll(ctx context.Context, limit, offset int) ([]models.PostDB, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.timestamp DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

// ListByAuthor returns posts written by userID.
func (r *PostReadRepository) ListByAuthor(ctx context.Context, userID int64, limit, offset int) ([]models.PostDB, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.timestamp DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

// GetByIDs loads the given posts in no particular order. Unknown ids are skipped.
func (r *PostReadRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.PostDB, error) {
	if len(ids) == 0 {
		return []models.PostDB{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id IN (?)
	`, ids)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
}

func (r *PostReadRepository) list(ctx context.Context, query string, args ...any) ([]models.PostDB, error) {
	posts := []models.PostDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &posts, query, args...)

	logQuery(query, args, len(posts), err)

	if err != nil {
		return nil, err
	}
	return posts, nil
}
