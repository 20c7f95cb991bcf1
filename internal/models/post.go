package models

import "time"

// MaxPostLength is the maximum number of characters in a post body.
const MaxPostLength = 140

// PostDB represents a post row joined with its author's username.
type PostDB struct {
	ID             int64     `json:"id" db:"id"`                           // Primary key
	Body           string    `json:"body" db:"body"`                       // Post text
	Timestamp      time.Time `json:"timestamp" db:"timestamp"`             // Creation time, feed ordering key
	UserID         int64     `json:"user_id" db:"user_id"`                 // Author
	AuthorUsername string    `json:"author_username" db:"author_username"` // Author's username
	AuthorEmail    string    `json:"-" db:"author_email"`                  // Author's email, used for the avatar
}
