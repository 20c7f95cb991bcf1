package handlers

//go:generate mockgen -source=posts.go -destination=mock_posts.go -package=handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// PostCreator stores new posts.
type PostCreator interface {
	CreatePost(ctx context.Context, authorID int64, body string) (*models.PostDB, error)
}

// TimelineReader reads the personal feed and the global timeline.
type TimelineReader interface {
	FeedFor(ctx context.Context, userID int64, page, perPage int) (models.Page[models.PostDB], error)
	Explore(ctx context.Context, page, perPage int) (models.Page[models.PostDB], error)
}

// PostSearcher runs full-text queries over posts.
type PostSearcher interface {
	Search(ctx context.Context, text string, page, perPage int) (models.Page[models.PostDB], error)
}

// CreatePostRequest represents the JSON body for a new post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Post text, 1 to 140 characters
	// required: true
	// default: Hello, world!
	Post string `json:"post" validate:"required,runes=140"`
}

// NewCreatePostHandler returns an HTTP handler that publishes a post for the caller.
// @Summary Create post
// @Description Publishes a post of 1 to 140 characters.
// @Tags posts
// @Accept json
// @Produce json
// @Param createPostRequest body handlers.CreatePostRequest true "Post"
// @Success 201 {object} handlers.PostResponse "Created post"
// @Failure 400 {object} handlers.ErrorResponse "Invalid post"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /posts [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req CreatePostRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		post, err := svc.CreatePost(r.Context(), userID, req.Post)
		if err != nil {
			if errors.Is(err, services.ErrInvalidPostBody) {
				writeError(w, http.StatusBadRequest, "Post must be between 1 and 140 characters.")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newPostResponse(*post))
	}
}

// NewFeedHandler returns an HTTP handler for the caller's feed.
// @Summary Home feed
// @Description Posts by the caller and by the users the caller follows, newest first.
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size"
// @Success 200 {object} handlers.PostPageResponse "Feed page"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /feed [get]
// @Security BearerAuth
func NewFeedHandler(svc TimelineReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		page, perPage := pageParams(r)
		result, err := svc.FeedFor(r.Context(), userID, page, perPage)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostPageResponse(result))
	}
}

// NewExploreHandler returns an HTTP handler for the global timeline.
// @Summary Explore
// @Description All posts, newest first.
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size"
// @Success 200 {object} handlers.PostPageResponse "Timeline page"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /explore [get]
// @Security BearerAuth
func NewExploreHandler(svc TimelineReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		result, err := svc.Explore(r.Context(), page, perPage)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostPageResponse(result))
	}
}

// NewSearchHandler returns an HTTP handler for full-text post search.
// @Summary Search posts
// @Description Posts matching q, best match first. Empty when search is not configured.
// @Tags posts
// @Produce json
// @Param q query string true "Search text"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size"
// @Success 200 {object} handlers.PostPageResponse "Matching posts"
// @Failure 400 {object} handlers.ErrorResponse "Missing query"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /search [get]
// @Security BearerAuth
func NewSearchHandler(svc PostSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			writeError(w, http.StatusBadRequest, "Search query is required.")
			return
		}

		page, perPage := pageParams(r)
		result, err := svc.Search(r.Context(), q, page, perPage)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostPageResponse(result))
	}
}
