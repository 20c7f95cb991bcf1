package middlewares

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-microblog/internal/jwt"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RevocationChecker reports whether an access token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LastSeenToucher records user activity.
type LastSeenToucher interface {
	TouchLastSeen(ctx context.Context, userID int64) error
}

// AuthMiddleware accepts requests carrying a valid, unrevoked bearer token,
// stores the caller in the context and records the caller as last seen now.
// revoked and toucher may be nil.
func AuthMiddleware(tokener Tokener, revoked RevocationChecker, toucher LastSeenToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			if revoked != nil && claims.ID != "" {
				isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
				if err != nil {
					logger.Log.Warnw("revocation check failed, accepting token", "jti", claims.ID, "err", err)
				} else if isRevoked {
					logger.Log.Infow("authorization failed", "err", "token revoked", "jti", claims.ID)
					writeUnauthorized(w)
					return
				}
			}

			ctx = WithToken(WithUserID(ctx, claims.UserID), tokenString)

			if toucher != nil {
				// A failed statement would poison the request transaction.
				if err := toucher.TouchLastSeen(WithoutTx(ctx), claims.UserID); err != nil {
					logger.Log.Warnw("failed to touch last seen", "user_id", claims.UserID, "err", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user id.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetTokenFromContext returns the bearer token the request was authenticated with.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithUserID returns a context authenticated as userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithToken returns a context carrying the bearer token of the request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Please log in to access this page."}`))
}
