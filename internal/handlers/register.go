package handlers

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) (*models.UserDB, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: susan
	Username string `json:"username" validate:"required,max=64"`

	// Email
	// required: true
	// default: susan@example.com
	Email string `json:"email" validate:"required,email,max=120"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,maxbytes=72"`

	// Password confirmation
	// required: true
	// default: secret123
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: Congratulations, you are now a registered user!
	Message string `json:"message"`

	// New user id
	UserID int64 `json:"user_id"`
}

const passwordTooLongMessage = "Password must be at most 72 bytes."

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username and email must both be unused. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Username or email already exists / invalid request"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "Username or email already exists")
			case errors.Is(err, services.ErrPasswordTooLong):
				writeError(w, http.StatusBadRequest, passwordTooLongMessage)
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message: "Congratulations, you are now a registered user!",
			UserID:  user.ID,
		})
	}
}
