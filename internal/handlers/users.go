package handlers

//go:generate mockgen -source=users.go -destination=mock_users.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// UserGetter resolves usernames.
type UserGetter interface {
	GetUser(ctx context.Context, username string) (*models.UserDB, error)
}

// ProfileReader builds a user's profile as seen by a viewer.
type ProfileReader interface {
	GetProfile(ctx context.Context, viewerID int64, username string) (*models.Profile, error)
}

// ProfileEditor changes the caller's own profile.
type ProfileEditor interface {
	EditProfile(ctx context.Context, userID int64, username string, aboutMe *string) (*models.UserDB, error)
}

// AuthorPostsReader lists one author's posts.
type AuthorPostsReader interface {
	PostsBy(ctx context.Context, authorID int64, page, perPage int) (models.Page[models.PostDB], error)
}

// UserResponse represents a public user
// swagger:model UserResponse
type UserResponse struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	AboutMe  *string   `json:"about_me,omitempty"`
	LastSeen time.Time `json:"last_seen"`
	Avatar   string    `json:"avatar"`
}

// ProfileResponse represents a user profile
// swagger:model ProfileResponse
type ProfileResponse struct {
	UserResponse
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
	IsSelf         bool  `json:"is_self"`
}

// EditProfileRequest represents the JSON body for editing the caller's profile
// swagger:model EditProfileRequest
type EditProfileRequest struct {
	// Username
	// required: true
	Username string `json:"username" validate:"required,max=64"`

	// About me, at most 140 characters
	AboutMe *string `json:"about_me" validate:"omitempty,max=140"`
}

func newUserResponse(u *models.UserDB) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		AboutMe:  u.AboutMe,
		LastSeen: u.LastSeen,
		Avatar:   u.Avatar(128),
	}
}

func userNotFound(w http.ResponseWriter, username string) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("User %s not found.", username))
}

// NewProfileHandler returns an HTTP handler for a user's profile.
// @Summary User profile
// @Description Profile with follower figures and whether the caller follows the user.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.ProfileResponse "Profile"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{username} [get]
// @Security BearerAuth
func NewProfileHandler(svc ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		username := chi.URLParam(r, "username")

		profile, err := svc.GetProfile(r.Context(), viewerID, username)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				userNotFound(w, username)
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			UserResponse:   newUserResponse(profile.User),
			FollowersCount: profile.FollowersCount,
			FollowingCount: profile.FollowingCount,
			IsFollowing:    profile.IsFollowing,
			IsSelf:         profile.IsSelf,
		})
	}
}

// NewUserPostsHandler returns an HTTP handler for one author's posts.
// @Summary User posts
// @Description Posts by the user, newest first.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size"
// @Success 200 {object} handlers.PostPageResponse "Posts page"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{username}/posts [get]
// @Security BearerAuth
func NewUserPostsHandler(users UserGetter, posts AuthorPostsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := users.GetUser(r.Context(), username)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				userNotFound(w, username)
				return
			}
			writeInternalError(w, err)
			return
		}

		page, perPage := pageParams(r)
		result, err := posts.PostsBy(r.Context(), user.ID, page, perPage)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostPageResponse(result))
	}
}

// NewEditProfileHandler returns an HTTP handler that edits the caller's profile.
// @Summary Edit profile
// @Description Changes the caller's username and about me text.
// @Tags users
// @Accept json
// @Produce json
// @Param editProfileRequest body handlers.EditProfileRequest true "Profile"
// @Success 200 {object} handlers.UserResponse "Updated user"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or username taken"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/me [put]
// @Security BearerAuth
func NewEditProfileHandler(svc ProfileEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req EditProfileRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		user, err := svc.EditProfile(r.Context(), userID, req.Username, req.AboutMe)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUsernameTaken):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{
					Error:  "Validation failed",
					Fields: map[string]string{"username": "Please use a different username."},
				})
			case errors.Is(err, services.ErrAboutMeTooLong):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{
					Error:  "Validation failed",
					Fields: map[string]string{"about_me": "Must be at most 140 characters."},
				})
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusUnauthorized, "Please log in to access this page.")
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}
