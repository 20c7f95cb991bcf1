package handlers

//go:generate mockgen -source=reset_password.go -destination=mock_reset_password.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// PasswordResetRequester starts the password reset flow.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// PasswordResetter finishes the password reset flow.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, password string) error
}

// ResetPasswordRequest represents the JSON body for a reset link request
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Email
	// required: true
	// default: susan@example.com
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordConfirm represents the JSON body for setting a new password
// swagger:model ResetPasswordConfirm
type ResetPasswordConfirm struct {
	// New password
	// required: true
	Password string `json:"password" validate:"required,maxbytes=72"`

	// New password confirmation
	// required: true
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

const resetRequestedMessage = "Check your email for the instructions to reset your password"

// NewResetPasswordRequestHandler returns an HTTP handler that mails a reset link.
// The answer is the same whether or not the email is registered.
// @Summary Request password reset
// @Description Sends a password reset link to the email when it belongs to a user.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Email"
// @Success 200 {object} handlers.MessageResponse "Reset requested"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Router /reset_password_request [post]
func NewResetPasswordRequestHandler(svc PasswordResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			logger.Log.Errorw("password reset request failed", "err", err)
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: resetRequestedMessage})
	}
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password
// for the user a reset token was issued to.
// @Summary Reset password
// @Description Sets a new password using a token received by email. A token works once.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param resetPasswordConfirm body handlers.ResetPasswordConfirm true "New password"
// @Success 200 {object} handlers.MessageResponse "Password reset"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /reset_password/{token} [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		var req ResetPasswordConfirm
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := svc.ResetPassword(r.Context(), token, req.Password); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidResetToken):
				writeError(w, http.StatusBadRequest, "The reset link is invalid or has expired.")
			case errors.Is(err, services.ErrPasswordTooLong):
				writeError(w, http.StatusBadRequest, passwordTooLongMessage)
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Your password has been reset."})
	}
}
