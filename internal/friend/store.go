package friend

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new FriendStore.
func New(db *sql.DB) FriendStore {
	return &store{
		db: db,
	}
}

// SendRequest creates a pending friend request. If the pair is already
// friends, or an identical pending request exists, nothing is written and a
// nil request is returned; re-sending is always safe.
func (s *store) SendRequest(fromID, fromName, toID, toName string) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		return nil, fmt.Errorf("cannot send a friend request to yourself")
	}

	alreadyFriends, err := s.edgeExists(fromID, toID)
	if err != nil {
		return nil, err
	}
	if alreadyFriends {
		log.Debug("Skipping friend request, already friends", "from", fromID, "to", toID)
		return nil, nil
	}

	var pendingExists bool
	err = s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE from_user_id = ? AND to_user_id = ? AND status = ?
		)
	`, fromID, toID, StatusPending).Scan(&pendingExists)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pendingExists {
		log.Debug("Skipping friend request, one is already pending", "from", fromID, "to", toID)
		return nil, nil
	}

	request := &Request{
		ID:           uuid.New().String(),
		FromUserID:   fromID,
		FromUserName: fromName,
		ToUserID:     toID,
		ToUserName:   toName,
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}
	_, err = s.db.Exec(`
		INSERT INTO friend_requests (id, from_user_id, from_user_name, to_user_id, to_user_name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, request.ID, request.FromUserID, request.FromUserName, request.ToUserID, request.ToUserName, request.Status, request.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	log.Info("Friend request sent", "requestID", request.ID, "from", fromID, "to", toID)
	return request, nil
}

// AcceptRequest resolves a pending request into a friendship. It is a saga:
// the request is re-read first (it may have been resolved concurrently), each
// friendship direction is checked independently, and the missing edges are
// written together with the request deletion in a single batch. Partial
// failure leaves either "still pending" or "friends"; re-running from the top
// is safe because existing edges are never duplicated.
func (s *store) AcceptRequest(requestID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.getRequest(requestID)
	if err != nil {
		return err
	}
	if request.Status != StatusPending {
		return ErrRequestNotPending
	}
	if request.ToUserID != callerID {
		return ErrNotRecipient
	}

	hasForward, err := s.edgeExists(request.ToUserID, request.FromUserID)
	if err != nil {
		return err
	}
	hasReverse, err := s.edgeExists(request.FromUserID, request.ToUserID)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	if !hasForward {
		_, err = tx.Exec(`
			INSERT INTO friends (id, user_id, user_name, friend_id, friend_name, added_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), request.ToUserID, request.ToUserName, request.FromUserID, request.FromUserName, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create friend edge: %w", err)
		}
	}
	if !hasReverse {
		_, err = tx.Exec(`
			INSERT INTO friends (id, user_id, user_name, friend_id, friend_name, added_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), request.FromUserID, request.FromUserName, request.ToUserID, request.ToUserName, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create friend edge: %w", err)
		}
	}

	// Guard the delete on the request still being pending: when two accepts
	// race, exactly one batch removes the request and the other observes it
	// gone.
	res, err := tx.Exec(
		"DELETE FROM friend_requests WHERE id = ? AND status = ?",
		requestID, StatusPending,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return ErrRequestNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Friend request accepted", "requestID", requestID, "from", request.FromUserID, "to", request.ToUserID)
	return nil
}

// RejectRequest deletes a pending request. Only the recipient may reject;
// a request already resolved by the other party surfaces as not found.
func (s *store) RejectRequest(requestID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.getRequest(requestID)
	if err != nil {
		return err
	}
	if request.ToUserID != callerID {
		return ErrNotRecipient
	}

	_, err = s.db.Exec("DELETE FROM friend_requests WHERE id = ?", requestID)
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	log.Info("Friend request rejected", "requestID", requestID)
	return nil
}

func (s *store) ListPendingRequests(toUserID string) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRequests("to_user_id", toUserID)
}

func (s *store) ListSentRequests(fromUserID string) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRequests("from_user_id", fromUserID)
}

func (s *store) ListFriends(userID string) ([]Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, user_id, user_name, friend_id, friend_name, added_at
		FROM friends WHERE user_id = ? ORDER BY friend_name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	defer rows.Close()

	friends := []Friend{}
	for rows.Next() {
		var f Friend
		var addedAt int64
		if err := rows.Scan(&f.ID, &f.UserID, &f.UserName, &f.FriendID, &f.FriendName, &addedAt); err != nil {
			log.Error("Failed to scan friend row", "error", err)
			continue
		}
		f.AddedAt = time.Unix(addedAt, 0)
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func (s *store) AreFriends(userID, friendID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edgeExists(userID, friendID)
}

// RecordMatch persists a 1v1 match. The creator must be one of the players
// and the winner must be one of the players.
func (s *store) RecordMatch(match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.Player1ID == match.Player2ID {
		return fmt.Errorf("a match needs two distinct players")
	}
	if match.WinnerID != match.Player1ID && match.WinnerID != match.Player2ID {
		return fmt.Errorf("winner %s is not one of the players", match.WinnerID)
	}
	if match.CreatedBy != match.Player1ID && match.CreatedBy != match.Player2ID {
		return fmt.Errorf("creator %s is not one of the players", match.CreatedBy)
	}

	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	match.Players = []string{match.Player1ID, match.Player2ID}

	playersJSON, err := json.Marshal(match.Players)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, player1_id, player1_name, player2_id, player2_name, players_json, winner_id, winner_name, match_date, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.Player1ID, match.Player1Name, match.Player2ID, match.Player2Name, string(playersJSON),
		match.WinnerID, match.WinnerName, match.Date.Unix(), match.CreatedAt.Unix(), match.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	log.Info("Recorded 1v1 match", "matchID", match.ID, "winner", match.WinnerName)
	return nil
}

// DeleteMatch removes a match; only its creator may do so.
func (s *store) DeleteMatch(matchID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var createdBy string
	err := s.db.QueryRow("SELECT created_by FROM matches WHERE id = ?", matchID).Scan(&createdBy)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to query match: %w", err)
	}
	if createdBy != callerID {
		return ErrNotMatchCreator
	}

	_, err = s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	log.Info("Deleted 1v1 match", "matchID", matchID)
	return nil
}

// GetMatchesWithFriend returns every 1v1 match between the two users, newest
// match date first.
func (s *store) GetMatchesWithFriend(userID, friendID string) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player1_id, player1_name, player2_id, player2_name, players_json, winner_id, winner_name, match_date, created_at, created_by
		FROM matches
		WHERE (player1_id = ? AND player2_id = ?) OR (player1_id = ? AND player2_id = ?)
		ORDER BY match_date DESC, created_at DESC
	`, userID, friendID, friendID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var m Match
		var playersJSON string
		var matchDate, createdAt int64
		err := rows.Scan(&m.ID, &m.Player1ID, &m.Player1Name, &m.Player2ID, &m.Player2Name, &playersJSON,
			&m.WinnerID, &m.WinnerName, &matchDate, &createdAt, &m.CreatedBy)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		if err := json.Unmarshal([]byte(playersJSON), &m.Players); err != nil {
			log.Error("Failed to unmarshal players_json", "error", err, "matchID", m.ID)
		}
		m.Date = time.Unix(matchDate, 0)
		m.CreatedAt = time.Unix(createdAt, 0)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) getRequest(requestID string) (*Request, error) {
	var r Request
	var createdAt int64
	err := s.db.QueryRow(`
		SELECT id, from_user_id, from_user_name, to_user_id, to_user_name, status, created_at
		FROM friend_requests WHERE id = ?
	`, requestID).Scan(&r.ID, &r.FromUserID, &r.FromUserName, &r.ToUserID, &r.ToUserName, &r.Status, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to query friend request: %w", err)
	}
	r.CreatedAt = time.Unix(createdAt, 0)
	return &r, nil
}

func (s *store) edgeExists(userID, friendID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = ? AND friend_id = ?)",
		userID, friendID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

func (s *store) queryRequests(column, userID string) ([]Request, error) {
	rows, err := s.db.Query(`
		SELECT id, from_user_id, from_user_name, to_user_id, to_user_name, status, created_at
		FROM friend_requests WHERE `+column+` = ? AND status = ? ORDER BY created_at DESC
	`, userID, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		var r Request
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.FromUserID, &r.FromUserName, &r.ToUserID, &r.ToUserName, &r.Status, &createdAt); err != nil {
			log.Error("Failed to scan friend request row", "error", err)
			continue
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
