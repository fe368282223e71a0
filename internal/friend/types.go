package friend

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// store handles all database operations for friendships and 1v1 matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// RequestStatus is the lifecycle state of a friend request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

var (
	// ErrRequestNotFound is returned when a friend request no longer exists,
	// typically because the other party resolved it concurrently. This is a
	// reported, non-fatal outcome.
	ErrRequestNotFound = errors.New("friend request no longer exists")
	// ErrRequestNotPending is returned when a request's status changed
	// between display and action.
	ErrRequestNotPending = errors.New("friend request is not pending")
	// ErrNotRecipient is returned when someone other than the addressed user
	// tries to resolve a request.
	ErrNotRecipient = errors.New("caller is not the request recipient")
	// ErrMatchNotFound is returned when a match id does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrNotMatchCreator is returned when a user other than the recorder
	// attempts to delete a match.
	ErrNotMatchCreator = errors.New("only the match creator can delete it")
)

// Friend is one direction of a friendship edge. A full friendship is two
// edges, one per user, so each user's friend list is a single-field query.
type Friend struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	FriendID   string    `json:"friend_id"`
	FriendName string    `json:"friend_name"`
	AddedAt    time.Time `json:"added_at"`
}

// Request is a pending friend request from one user to another.
type Request struct {
	ID           string        `json:"id"`
	FromUserID   string        `json:"from_user_id"`
	FromUserName string        `json:"from_user_name"`
	ToUserID     string        `json:"to_user_id"`
	ToUserName   string        `json:"to_user_name"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Match is a 1v1 match between two friends, outside any group.
type Match struct {
	ID          string    `json:"id"`
	Player1ID   string    `json:"player1_id"`
	Player1Name string    `json:"player1_name"`
	Player2ID   string    `json:"player2_id"`
	Player2Name string    `json:"player2_name"`
	Players     []string  `json:"players"`
	WinnerID    string    `json:"winner_id"`
	WinnerName  string    `json:"winner_name"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}
