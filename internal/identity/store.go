package identity

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new UserStore.
func New(db *sql.DB) UserStore {
	return &store{
		db: db,
	}
}

// RegisterUser creates or updates the caller's profile. Display names are
// unique case-insensitively across all users; the check and the write happen
// under one transaction so two racing registrations cannot both claim a name.
func (s *store) RegisterUser(user UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nameLower := strings.ToLower(strings.TrimSpace(user.DisplayName))
	if nameLower == "" {
		return fmt.Errorf("display name must not be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var takenBy string
	err = tx.QueryRow(
		"SELECT id FROM users WHERE display_name_lower = ? AND id != ?",
		nameLower, user.ID,
	).Scan(&takenBy)
	if err != nil && err != sql.ErrNoRows {
		tx.Rollback()
		return fmt.Errorf("failed to check username availability: %w", err)
	}
	if err == nil {
		tx.Rollback()
		return ErrUsernameTaken
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO users (id, display_name, display_name_lower, email, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			display_name_lower = excluded.display_name_lower,
			email = excluded.email;
	`, user.ID, strings.TrimSpace(user.DisplayName), nameLower, user.Email, createdAt.Unix())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to register user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Registered user", "userID", user.ID, "displayName", user.DisplayName)
	return nil
}

func (s *store) GetUser(userID string) (*UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user UserInfo
	var email sql.NullString
	var createdAt int64
	err := s.db.QueryRow(
		"SELECT id, display_name, email, created_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.DisplayName, &email, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.Email = email.String
	user.CreatedAt = time.Unix(createdAt, 0)
	return &user, nil
}

func (s *store) GetUsers(userIDs []string) ([]UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(userIDs) == 0 {
		return []UserInfo{}, nil
	}

	placeholders := strings.Repeat("?,", len(userIDs)-1) + "?"
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}

	rows, err := s.db.Query(
		"SELECT id, display_name, email, created_at FROM users WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// UsernameAvailable reports whether no user currently holds the given display
// name, compared case-insensitively.
func (s *store) UsernameAvailable(displayName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM users WHERE display_name_lower = ?)",
		strings.ToLower(strings.TrimSpace(displayName)),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return !exists, nil
}

// SearchUsers returns users whose display name starts with prefix
// (case-insensitive), excluding excludeUserID, ordered by name.
func (s *store) SearchUsers(prefix string, excludeUserID string) ([]UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return []UserInfo{}, nil
	}

	rows, err := s.db.Query(`
		SELECT id, display_name, email, created_at FROM users
		WHERE display_name_lower LIKE ? AND id != ?
		ORDER BY display_name_lower
	`, prefix+"%", excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]UserInfo, error) {
	users := []UserInfo{}
	for rows.Next() {
		var user UserInfo
		var email sql.NullString
		var createdAt int64
		if err := rows.Scan(&user.ID, &user.DisplayName, &email, &createdAt); err != nil {
			log.Error("Failed to scan user row", "error", err)
			continue
		}
		user.Email = email.String
		user.CreatedAt = time.Unix(createdAt, 0)
		users = append(users, user)
	}
	return users, rows.Err()
}
