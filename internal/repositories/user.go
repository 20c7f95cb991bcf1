package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

const userColumns = `id, username, email, password_hash, about_me, last_seen, created_at`

// UserReadRepository handles user lookups.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the user with the given id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername returns the user with the given username, or nil when there is none.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, query, username)
}

// GetByEmail returns the user with the given email, or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByUsernameOrEmail returns any user holding the username or the email.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`
	return r.getOne(ctx, query, username, email)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)

	logQuery(query, args, user.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository handles user mutations.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a user and returns the stored row.
// A username or email collision yields ErrUniqueViolation.
func (r *UserWriteRepository) Create(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, last_seen, created_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + userColumns

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username, email, passwordHash)

	logQuery(query, []any{username, email}, user.ID, err)

	if err != nil {
		return nil, mapPgError(err)
	}
	return &user, nil
}

// UpdateProfile sets username and about_me.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, id int64, username string, aboutMe *string) error {
	const query = `UPDATE users SET username = $2, about_me = $3 WHERE id = $1`
	args := []any{id, username, aboutMe}
	return r.exec(ctx, query, args, args)
}

// SetPassword replaces the stored password hash.
func (r *UserWriteRepository) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	return r.exec(ctx, query, []any{id, passwordHash}, []any{id})
}

// TouchLastSeen records the time of the user's latest authenticated request.
func (r *UserWriteRepository) TouchLastSeen(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE users SET last_seen = $2 WHERE id = $1`
	args := []any{id, at}
	return r.exec(ctx, query, args, args)
}

// exec runs a statement; logArgs keeps secrets out of the log line.
func (r *UserWriteRepository) exec(ctx context.Context, query string, args, logArgs []any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, logArgs, rowsAffected, err)

	return mapPgError(err)
}
