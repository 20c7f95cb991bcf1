package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-microblog/internal/jwt"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// UserReader defines read-only operations for users.
// Lookups return a nil user and a nil error when nothing matches.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
}

// UserWriter defines credential write operations for users.
type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error)
	SetPassword(ctx context.Context, id int64, passwordHash string) error
}

// TokenManager signs and verifies access and password reset tokens.
type TokenManager interface {
	Generate(ctx context.Context, userID int64) (string, error)
	GetClaims(ctx context.Context, token string) (*jwt.Claims, error)
	GenerateReset(ctx context.Context, userID int64, fingerprint string, expiresIn time.Duration) (string, error)
	GetResetClaims(ctx context.Context, token string) (*jwt.ResetClaims, error)
}

// TokenRevoker remembers logged-out access tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// PasswordResetMailer hands a reset email over for asynchronous delivery.
type PasswordResetMailer interface {
	SendPasswordReset(ctx context.Context, user *models.UserDB, token string) error
}

// AuthService handles registration, login and password resets.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	tokens   TokenManager
	revoker  TokenRevoker
	mailer   PasswordResetMailer
	onCommit CommitHook
	resetExp time.Duration
}

// NewAuthService creates a new AuthService instance. When onCommit is nil,
// reset mail is dispatched right away.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens TokenManager,
	revoker TokenRevoker,
	mailer PasswordResetMailer,
	onCommit CommitHook,
	resetExp time.Duration,
) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		tokens:   tokens,
		revoker:  revoker,
		mailer:   mailer,
		onCommit: onCommit,
		resetExp: resetExp,
	}
}

// Register creates a user when neither the username nor the email is taken.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.UserDB, error) {
	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := svc.writer.Create(ctx, username, email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user when the password matches. Unknown users,
// users without a password and wrong passwords all yield ErrInvalidCredentials.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates a user and returns an access token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the access token until it would have expired anyway.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		return jwt.ErrInvalidToken
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return jwt.ErrInvalidToken
	}

	if err := svc.revoker.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		logger.Log.Errorw("failed to revoke token", "jti", claims.ID, "err", err)
		return err
	}
	return nil
}

// IssueResetToken signs a password reset token for user, bound to the
// user's current password hash.
func (svc *AuthService) IssueResetToken(ctx context.Context, user *models.UserDB) (string, error) {
	return svc.tokens.GenerateReset(ctx, user.ID, passwordFingerprint(user), svc.resetExp)
}

// VerifyResetToken resolves a reset token to its user. Any token problem, a
// password changed since issuance or a vanished user give a nil user and a nil
// error; only store failures are returned.
func (svc *AuthService) VerifyResetToken(ctx context.Context, token string) (*models.UserDB, error) {
	claims, err := svc.tokens.GetResetClaims(ctx, token)
	if err != nil {
		logger.Log.Infow("reset token rejected", "err", err)
		return nil, nil
	}

	user, err := svc.reader.GetByID(ctx, claims.ResetPassword)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if claims.Fingerprint != passwordFingerprint(user) {
		logger.Log.Infow("reset token already used", "user_id", user.ID)
		return nil, nil
	}

	return user, nil
}

// RequestPasswordReset mails a reset link when email belongs to a user.
// The outcome does not reveal whether the address is registered.
func (svc *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return nil
	}

	token, err := svc.IssueResetToken(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to issue reset token", "err", err)
		return err
	}

	send := func(ctx context.Context) {
		if err := svc.mailer.SendPasswordReset(ctx, user, token); err != nil {
			logger.Log.Errorw("failed to dispatch reset email", "user_id", user.ID, "err", err)
		}
	}
	if svc.onCommit != nil {
		svc.onCommit(ctx, send)
	} else {
		send(ctx)
	}
	return nil
}

// ResetPassword sets a new password for the user the token was issued to.
func (svc *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := svc.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}
	return svc.setPassword(ctx, user.ID, password)
}

// SetPassword sets a new password for the named user.
func (svc *AuthService) SetPassword(ctx context.Context, username, password string) error {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return svc.setPassword(ctx, user.ID, password)
}

func (svc *AuthService) setPassword(ctx context.Context, userID int64, password string) error {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := svc.writer.SetPassword(ctx, userID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to set password", "user_id", userID, "err", err)
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// hashPassword bcrypts password. bcrypt reads at most 72 bytes, so longer
// passwords are rejected with ErrPasswordTooLong.
func hashPassword(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}
	return hashed, nil
}

// passwordFingerprint is a short digest of the stored hash. It changes with
// every password change, which invalidates outstanding reset tokens.
func passwordFingerprint(user *models.UserDB) string {
	var hash string
	if user.PasswordHash != nil {
		hash = *user.PasswordHash
	}
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}
