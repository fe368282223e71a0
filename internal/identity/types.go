package identity

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// store handles all database operations for user profiles.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ErrUsernameTaken is returned when a display name is already claimed by
// another user (case-insensitive).
var ErrUsernameTaken = errors.New("username already taken")

// ErrUserNotFound is returned when a user id has no profile.
var ErrUserNotFound = errors.New("user not found")

// UserInfo is a registered user's profile. The id comes from the external
// authentication provider and is never generated here.
type UserInfo struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
