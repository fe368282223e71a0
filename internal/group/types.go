package group

import (
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cuescore/cuescore/internal/metrics"
	"github.com/google/uuid"
)

// store handles all database operations for groups, their rosters and their
// matches.
type store struct {
	db      *sql.DB
	mu      sync.RWMutex
	metrics metrics.Metrics
}

// GuestIDPrefix namespaces guest ids so they can never collide with
// registered user ids, which are uuids.
const GuestIDPrefix = "unregistered_"

// batchLimit caps how many rows a single cleanup transaction touches.
const batchLimit = 450

var (
	// ErrGroupNotFound is returned when a group id does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotGroupOwner is returned when someone other than the creator tries
	// to delete a group.
	ErrNotGroupOwner = errors.New("only the group owner can delete it")
	// ErrNotMember is returned when an operation requires group membership.
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrGuestNameTaken is returned when a guest name already exists in the
	// group, compared case-insensitively.
	ErrGuestNameTaken = errors.New("a guest with that name already exists in the group")
	// ErrGuestNotFound is returned when a guest id does not exist in the
	// group.
	ErrGuestNotFound = errors.New("guest not found")
	// ErrMatchNotFound is returned when a group match id does not exist.
	ErrMatchNotFound = errors.New("group match not found")
	// ErrNotMatchCreator is returned when a user other than the recorder
	// attempts to delete a group match.
	ErrNotMatchCreator = errors.New("only the match creator can delete it")
)

// Group is a named circle of players with a denormalized roster id list.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	MemberIDs []string  `json:"member_ids"`
}

// Member is a registered user's membership in a group.
type Member struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	JoinedAt time.Time `json:"joined_at"`
}

// Guest is a player without an account, scoped to one group. Its id carries
// the GuestIDPrefix namespace.
type Guest struct {
	ID             string     `json:"id"`
	GroupID        string     `json:"group_id"`
	Name           string     `json:"name"`
	CreatedAt      time.Time  `json:"created_at"`
	CreatedBy      string     `json:"created_by"`
	LinkedToUserID string     `json:"linked_to_user_id,omitempty"`
	LinkedAt       *time.Time `json:"linked_at,omitempty"`
}

// NewGuestID mints a namespaced guest id.
func NewGuestID() string {
	return GuestIDPrefix + uuid.New().String()
}

// IsGuestID reports whether an id belongs to the guest namespace.
func IsGuestID(id string) bool {
	return strings.HasPrefix(id, GuestIDPrefix)
}

// TrimGuestID strips the guest namespace prefix, if present.
func TrimGuestID(id string) string {
	return strings.TrimPrefix(id, GuestIDPrefix)
}
