package handlers

//go:generate mockgen -source=follow.go -destination=mock_follow.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// Follower edits the caller's follow edges.
type Follower interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
}

// NewFollowHandler returns an HTTP handler that makes the caller follow a user.
// @Summary Follow user
// @Description Follows the user. Following twice is a no-op.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.MessageResponse "Following"
// @Failure 400 {object} handlers.ErrorResponse "Cannot follow yourself"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /follow/{username} [post]
// @Security BearerAuth
func NewFollowHandler(users UserGetter, graph Follower) http.HandlerFunc {
	return newFollowEdgeHandler(users, graph.Follow,
		"You cannot follow yourself!",
		"You are following %s!",
	)
}

// NewUnfollowHandler returns an HTTP handler that makes the caller stop following a user.
// @Summary Unfollow user
// @Description Stops following the user. Unfollowing a user not followed is a no-op.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.MessageResponse "Not following"
// @Failure 400 {object} handlers.ErrorResponse "Cannot unfollow yourself"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /unfollow/{username} [post]
// @Security BearerAuth
func NewUnfollowHandler(users UserGetter, graph Follower) http.HandlerFunc {
	return newFollowEdgeHandler(users, graph.Unfollow,
		"You cannot unfollow yourself!",
		"You are not following %s.",
	)
}

func newFollowEdgeHandler(
	users UserGetter,
	apply func(ctx context.Context, followerID, followedID int64) error,
	selfMessage, doneMessage string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		username := chi.URLParam(r, "username")

		target, err := users.GetUser(r.Context(), username)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				userNotFound(w, username)
				return
			}
			writeInternalError(w, err)
			return
		}

		if err := apply(r.Context(), userID, target.ID); err != nil {
			if errors.Is(err, services.ErrCannotFollowSelf) {
				writeError(w, http.StatusBadRequest, selfMessage)
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf(doneMessage, username)})
	}
}
