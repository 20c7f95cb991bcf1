package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                       // Primary key
	Username     string    `json:"username" db:"username"`           // Unique username
	Email        string    `json:"email" db:"email"`                 // Unique email
	PasswordHash *string   `json:"-" db:"password_hash"`             // Hashed password, NULL until set
	AboutMe      *string   `json:"about_me,omitempty" db:"about_me"` // Free text, at most 140 characters
	LastSeen     time.Time `json:"last_seen" db:"last_seen"`         // Updated on every authenticated request
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
}

// PrincipalID identifies the user as an authenticated principal.
func (u *UserDB) PrincipalID() int64 {
	return u.ID
}

// HasPassword reports whether the user can log in with a password.
func (u *UserDB) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Avatar returns the Gravatar identicon URL for the user's email at the given size.
func (u *UserDB) Avatar(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(sum[:]), size)
}

// Profile is a user together with social graph figures as seen by a viewer.
type Profile struct {
	User           *UserDB
	FollowersCount int64
	FollowingCount int64
	IsFollowing    bool
	IsSelf         bool
}
