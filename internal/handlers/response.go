package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/middlewares"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/validation"
)

const avatarSize = 70

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`

	// Field problems, present for validation failures
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse represents a plain confirmation
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	Message string `json:"message"`
}

// AuthorResponse is the author block of a post
// swagger:model AuthorResponse
type AuthorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PostResponse represents a single post
// swagger:model PostResponse
type PostResponse struct {
	ID        int64          `json:"id"`
	Body      string         `json:"body"`
	Timestamp time.Time      `json:"timestamp"`
	Author    AuthorResponse `json:"author"`
}

// PostPageResponse represents one page of posts
// swagger:model PostPageResponse
type PostPageResponse struct {
	Items    []PostResponse `json:"items"`
	Page     int            `json:"page"`
	PerPage  int            `json:"per_page"`
	HasNext  bool           `json:"has_next"`
	HasPrev  bool           `json:"has_prev"`
	NextPage *int           `json:"next_page,omitempty"`
	PrevPage *int           `json:"prev_page,omitempty"`
}

func newPostResponse(p models.PostDB) PostResponse {
	author := models.UserDB{ID: p.UserID, Username: p.AuthorUsername, Email: p.AuthorEmail}
	return PostResponse{
		ID:        p.ID,
		Body:      p.Body,
		Timestamp: p.Timestamp,
		Author: AuthorResponse{
			ID:       p.UserID,
			Username: p.AuthorUsername,
			Avatar:   author.Avatar(avatarSize),
		},
	}
}

func newPostPageResponse(page models.Page[models.PostDB]) PostPageResponse {
	resp := PostPageResponse{
		Items:   make([]PostResponse, 0, len(page.Items)),
		Page:    page.Page,
		PerPage: page.PerPage,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	}
	for _, p := range page.Items {
		resp.Items = append(resp.Items, newPostResponse(p))
	}
	if page.HasNext {
		next := page.NextPage()
		resp.NextPage = &next
	}
	if page.HasPrev {
		prev := page.PrevPage()
		resp.PrevPage = &prev
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeInternalError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeAndValidate decodes a JSON body into req and checks its tags.
// It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := validation.Struct(req); errs.HasErrors() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: errs})
		return false
	}
	return true
}

// pageParams reads page and per_page. Missing or malformed values are
// passed on as 0 and normalized by the services.
func pageParams(r *http.Request) (page, perPage int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	perPage, _ = strconv.Atoi(q.Get("per_page"))
	return page, perPage
}

// currentUserID returns the caller set by the auth middleware. It writes a
// 401 and reports false when the request is anonymous.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Please log in to access this page.")
		return 0, false
	}
	return userID, true
}
