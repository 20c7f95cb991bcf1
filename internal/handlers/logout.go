package handlers

//go:generate mockgen -source=logout.go -destination=mock_logout.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-microblog/internal/jwt"
	"github.com/sbilibin2017/gw-microblog/internal/middlewares"
)

// Logouter revokes access tokens.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// NewLogoutHandler returns an HTTP handler that revokes the caller's token.
// @Summary Logout user
// @Description Revokes the bearer token used for this request.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middlewares.GetTokenFromContext(r.Context())
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Please log in to access this page.")
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			if errors.Is(err, jwt.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, "Please log in to access this page.")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "You have been logged out."})
	}
}
