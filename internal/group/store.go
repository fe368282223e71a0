package group

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cuescore/cuescore/internal/metrics"
	"github.com/cuescore/cuescore/internal/scoring"
	"github.com/google/uuid"
)

// New creates a new GroupStore. The metrics service counts committed batches
// during group deletion and guest-link rewrites.
func New(db *sql.DB, m metrics.Metrics) GroupStore {
	return &store{
		db:      db,
		metrics: m,
	}
}

// CreateGroup creates a group with the creator as its first member.
func (s *store) CreateGroup(name, creatorID, creatorName string) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name cannot be empty")
	}

	group := &Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: creatorID,
		CreatedAt: time.Now(),
		MemberIDs: []string{creatorID},
	}
	memberIDsJSON, err := json.Marshal(group.MemberIDs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(`
		INSERT INTO groups (id, name, created_by, created_at, member_ids_json)
		VALUES (?, ?, ?, ?, ?)
	`, group.ID, group.Name, group.CreatedBy, group.CreatedAt.Unix(), string(memberIDsJSON))
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO group_members (id, group_id, user_id, user_name, joined_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), group.ID, creatorID, creatorName, group.CreatedAt.Unix())
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to add group creator as member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Created group", "groupID", group.ID, "name", name, "owner", creatorID)
	return group, nil
}

func (s *store) GetGroup(groupID string) (*Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getGroup(groupID)
}

func (s *store) ListGroupsForUser(userID string) ([]Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT g.id, g.name, g.created_by, g.created_at, g.member_ids_json
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			log.Error("Failed to scan group row", "error", err)
			continue
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// DeleteGroup removes a group and everything that references it. Only the
// owner may delete. Dependent rows go first in capped batches, each batch its
// own transaction, and the group row itself goes last, so an interrupted run
// leaves the group discoverable and the cleanup resumable from the top.
func (s *store) DeleteGroup(groupID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != callerID {
		return ErrNotGroupOwner
	}

	for _, table := range []string{"group_members", "group_matches", "user_group_preferences", "unregistered_group_users"} {
		if err := s.batchDelete(table, groupID); err != nil {
			return err
		}
	}

	_, err = s.db.Exec("DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group row: %w", err)
	}
	log.Info("Deleted group", "groupID", groupID, "name", group.Name)
	return nil
}

// AddMember adds a registered user to the group. Only existing members may
// add others; adding an existing member is a no-op.
func (s *store) AddMember(groupID, userID, userName, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	callerIsMember := false
	alreadyMember := false
	for _, id := range group.MemberIDs {
		if id == callerID {
			callerIsMember = true
		}
		if id == userID {
			alreadyMember = true
		}
	}
	if !callerIsMember {
		return ErrNotMember
	}
	if alreadyMember {
		return nil
	}

	memberIDsJSON, err := json.Marshal(append(group.MemberIDs, userID))
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO group_members (id, group_id, user_id, user_name, joined_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), groupID, userID, userName, time.Now().Unix())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to add group member: %w", err)
	}
	_, err = tx.Exec("UPDATE groups SET member_ids_json = ? WHERE id = ?", string(memberIDsJSON), groupID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update group roster: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Added group member", "groupID", groupID, "userID", userID)
	return nil
}

func (s *store) ListMembers(groupID string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, group_id, user_id, user_name, joined_at
		FROM group_members WHERE group_id = ? ORDER BY joined_at
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		var joinedAt int64
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.UserName, &joinedAt); err != nil {
			log.Error("Failed to scan group member row", "error", err)
			continue
		}
		m.JoinedAt = time.Unix(joinedAt, 0)
		members = append(members, m)
	}
	return members, rows.Err()
}

// Roster returns every rankable player in the group: registered members plus
// guests that have not been linked to an account.
func (s *store) Roster(groupID string) (scoring.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster(groupID)
}

// CreateGuest adds an unregistered player to the group. Guest names are
// unique within the group, compared case-insensitively.
func (s *store) CreateGuest(groupID, name, createdBy string) (*Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("guest name cannot be empty")
	}
	group, err := s.getGroup(groupID)
	if err != nil {
		return nil, err
	}
	creatorIsMember := false
	for _, id := range group.MemberIDs {
		if id == createdBy {
			creatorIsMember = true
			break
		}
	}
	if !creatorIsMember {
		return nil, ErrNotMember
	}

	var taken bool
	err = s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM unregistered_group_users
			WHERE group_id = ? AND LOWER(name) = LOWER(?) AND linked_to_user_id IS NULL
		)
	`, groupID, name).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("failed to check guest names: %w", err)
	}
	if taken {
		return nil, ErrGuestNameTaken
	}

	guest := &Guest{
		ID:        NewGuestID(),
		GroupID:   groupID,
		Name:      name,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	}
	_, err = s.db.Exec(`
		INSERT INTO unregistered_group_users (id, group_id, name, created_at, created_by)
		VALUES (?, ?, ?, ?, ?)
	`, guest.ID, guest.GroupID, guest.Name, guest.CreatedAt.Unix(), guest.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	log.Info("Created group guest", "groupID", groupID, "guestID", guest.ID, "name", name)
	return guest, nil
}

func (s *store) ListGuests(groupID string) ([]Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, group_id, name, created_at, created_by, linked_to_user_id, linked_at
		FROM unregistered_group_users WHERE group_id = ? ORDER BY name
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := []Guest{}
	for rows.Next() {
		var g Guest
		var createdAt int64
		var linkedTo sql.NullString
		var linkedAt sql.NullInt64
		if err := rows.Scan(&g.ID, &g.GroupID, &g.Name, &createdAt, &g.CreatedBy, &linkedTo, &linkedAt); err != nil {
			log.Error("Failed to scan guest row", "error", err)
			continue
		}
		g.CreatedAt = time.Unix(createdAt, 0)
		if linkedTo.Valid {
			g.LinkedToUserID = linkedTo.String
		}
		if linkedAt.Valid {
			t := time.Unix(linkedAt.Int64, 0)
			g.LinkedAt = &t
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// LinkGuest merges a guest into a registered user's identity. Every match
// referencing the guest id is rewritten to the user's id and name, in capped
// batches. The guest row is then removed and the user joins the roster. An
// interrupted run is resumable: already rewritten matches no longer carry the
// guest id, so retrying from the top only touches the remainder.
func (s *store) LinkGuest(groupID, guestID, userID, userName, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	isMember := false
	for _, id := range group.MemberIDs {
		if id == callerID {
			isMember = true
			break
		}
	}
	if !isMember {
		return ErrNotMember
	}

	var guestName string
	err = s.db.QueryRow(`
		SELECT name FROM unregistered_group_users
		WHERE id = ? AND group_id = ? AND linked_to_user_id IS NULL
	`, guestID, groupID).Scan(&guestName)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to query guest: %w", err)
	}

	rewritten, err := s.rewriteGuestMatches(groupID, guestID, guestName, userID, userName)
	if err != nil {
		return err
	}

	alreadyMember := false
	for _, id := range group.MemberIDs {
		if id == userID {
			alreadyMember = true
			break
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = tx.Exec(`
		UPDATE unregistered_group_users SET linked_to_user_id = ?, linked_at = ? WHERE id = ?
	`, userID, now, guestID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to mark guest linked: %w", err)
	}
	if !alreadyMember {
		_, err = tx.Exec(`
			INSERT INTO group_members (id, group_id, user_id, user_name, joined_at)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), groupID, userID, userName, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to add linked user as member: %w", err)
		}
		memberIDsJSON, err := json.Marshal(append(group.MemberIDs, userID))
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = tx.Exec("UPDATE groups SET member_ids_json = ? WHERE id = ?", string(memberIDsJSON), groupID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update group roster: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Linked guest to user", "groupID", groupID, "guestID", guestID, "userID", userID, "matchesRewritten", rewritten)
	return nil
}

// RecordMatch validates and persists a group match. Team lists are deduped,
// must be disjoint and non-empty, and every participant must be on the
// roster. Points are derived from the losing team's size.
func (s *store) RecordMatch(match *scoring.GroupMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.roster(match.GroupID)
	if err != nil {
		return err
	}

	teamA, teamANames := dedupeTeam(match.TeamA, match.TeamANames)
	teamB, teamBNames := dedupeTeam(match.TeamB, match.TeamBNames)
	if len(teamA) == 0 || len(teamB) == 0 {
		return fmt.Errorf("both teams need at least one player")
	}
	if match.WinningTeam != scoring.TeamA && match.WinningTeam != scoring.TeamB {
		return fmt.Errorf("winning team must be %q or %q", scoring.TeamA, scoring.TeamB)
	}
	inA := map[string]bool{}
	for _, id := range teamA {
		inA[id] = true
	}
	for _, id := range teamB {
		if inA[id] {
			return fmt.Errorf("player %s cannot be on both teams", id)
		}
	}
	allIDs := append(append([]string{}, teamA...), teamB...)
	for _, id := range allIDs {
		if _, ok := roster[id]; !ok {
			return fmt.Errorf("player %s is not on the group roster", id)
		}
	}
	if _, ok := roster[match.CreatedBy]; !ok {
		return ErrNotMember
	}

	match.TeamA, match.TeamANames = teamA, teamANames
	match.TeamB, match.TeamBNames = teamB, teamBNames
	match.AllPlayerIDs = allIDs
	match.PointsAwarded = scoring.MatchPoints(len(teamA), len(teamB), match.WinningTeam)
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}

	teamAJSON, _ := json.Marshal(match.TeamA)
	teamBJSON, _ := json.Marshal(match.TeamB)
	teamANamesJSON, _ := json.Marshal(match.TeamANames)
	teamBNamesJSON, _ := json.Marshal(match.TeamBNames)
	allIDsJSON, _ := json.Marshal(match.AllPlayerIDs)

	_, err = s.db.Exec(`
		INSERT INTO group_matches (id, group_id, team_a_json, team_b_json, team_a_names_json, team_b_names_json,
			winning_team, match_date, created_at, created_by, points_awarded, all_player_ids_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.GroupID, string(teamAJSON), string(teamBJSON), string(teamANamesJSON), string(teamBNamesJSON),
		string(match.WinningTeam), match.Date.Unix(), match.CreatedAt.Unix(), match.CreatedBy, match.PointsAwarded, string(allIDsJSON))
	if err != nil {
		return fmt.Errorf("failed to record group match: %w", err)
	}
	log.Info("Recorded group match", "matchID", match.ID, "groupID", match.GroupID, "points", match.PointsAwarded)
	return nil
}

// DeleteMatch removes a group match; only its creator may do so.
func (s *store) DeleteMatch(matchID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var createdBy string
	err := s.db.QueryRow("SELECT created_by FROM group_matches WHERE id = ?", matchID).Scan(&createdBy)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to query group match: %w", err)
	}
	if createdBy != callerID {
		return ErrNotMatchCreator
	}

	_, err = s.db.Exec("DELETE FROM group_matches WHERE id = ?", matchID)
	if err != nil {
		return fmt.Errorf("failed to delete group match: %w", err)
	}
	log.Info("Deleted group match", "matchID", matchID)
	return nil
}

func (s *store) ListMatches(groupID string) ([]scoring.GroupMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, group_id, team_a_json, team_b_json, team_a_names_json, team_b_names_json,
			winning_team, match_date, created_at, created_by, points_awarded, all_player_ids_json
		FROM group_matches WHERE group_id = ? ORDER BY match_date DESC, created_at DESC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group matches: %w", err)
	}
	defer rows.Close()

	matches := []scoring.GroupMatch{}
	for rows.Next() {
		m, err := scanGroupMatch(rows)
		if err != nil {
			log.Error("Failed to scan group match row", "error", err)
			continue
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// SetPreferredView stores the user's preferred ranking sort for a group.
func (s *store) SetPreferredView(userID, groupID string, view scoring.SortOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if view != scoring.SortByPoints && view != scoring.SortByWinPercentage {
		return fmt.Errorf("unknown ranking view %q", view)
	}
	_, err := s.db.Exec(`
		INSERT INTO user_group_preferences (id, user_id, group_id, preferred_view, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET preferred_view = excluded.preferred_view, last_updated = excluded.last_updated
	`, userID+"_"+groupID, userID, groupID, string(view), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save ranking preference: %w", err)
	}
	return nil
}

// GetPreferredView returns the user's ranking sort for a group, defaulting to
// points.
func (s *store) GetPreferredView(userID, groupID string) (scoring.SortOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var view string
	err := s.db.QueryRow(
		"SELECT preferred_view FROM user_group_preferences WHERE id = ?",
		userID+"_"+groupID,
	).Scan(&view)
	if err != nil {
		if err == sql.ErrNoRows {
			return scoring.SortByPoints, nil
		}
		return "", fmt.Errorf("failed to query ranking preference: %w", err)
	}
	return scoring.SortOption(view), nil
}

func (s *store) getGroup(groupID string) (*Group, error) {
	row := s.db.QueryRow("SELECT id, name, created_by, created_at, member_ids_json FROM groups WHERE id = ?", groupID)
	g, err := scanGroup(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to query group: %w", err)
	}
	return g, nil
}

func (s *store) roster(groupID string) (scoring.Roster, error) {
	if _, err := s.getGroup(groupID); err != nil {
		return nil, err
	}

	roster := scoring.Roster{}
	rows, err := s.db.Query("SELECT user_id, user_name FROM group_members WHERE group_id = ?", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		roster[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	guestRows, err := s.db.Query(
		"SELECT id, name FROM unregistered_group_users WHERE group_id = ? AND linked_to_user_id IS NULL",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer guestRows.Close()
	for guestRows.Next() {
		var id, name string
		if err := guestRows.Scan(&id, &name); err != nil {
			return nil, err
		}
		roster[id] = name
	}
	return roster, guestRows.Err()
}

// rewriteGuestMatches replaces a guest id with a registered user id in every
// match of the group that references it. Updates are applied in transactions
// of at most batchLimit matches.
func (s *store) rewriteGuestMatches(groupID, guestID, guestName, userID, userName string) (int, error) {
	total := 0
	for {
		rows, err := s.db.Query(`
			SELECT id, group_id, team_a_json, team_b_json, team_a_names_json, team_b_names_json,
				winning_team, match_date, created_at, created_by, points_awarded, all_player_ids_json
			FROM group_matches
			WHERE group_id = ? AND all_player_ids_json LIKE ? ESCAPE '\'
			LIMIT ?
		`, groupID, "%\""+escapeLike(guestID)+"\"%", batchLimit)
		if err != nil {
			return total, fmt.Errorf("failed to query guest matches: %w", err)
		}
		batch := []*scoring.GroupMatch{}
		for rows.Next() {
			m, err := scanGroupMatch(rows)
			if err != nil {
				rows.Close()
				return total, err
			}
			batch = append(batch, m)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return total, err
		}
		rows.Close()
		if len(batch) == 0 {
			return total, nil
		}

		tx, err := s.db.Begin()
		if err != nil {
			return total, err
		}
		for _, m := range batch {
			m.TeamA, m.TeamANames = replacePlayer(m.TeamA, m.TeamANames, guestID, userID, userName)
			m.TeamB, m.TeamBNames = replacePlayer(m.TeamB, m.TeamBNames, guestID, userID, userName)
			m.AllPlayerIDs = append(append([]string{}, m.TeamA...), m.TeamB...)

			teamAJSON, _ := json.Marshal(m.TeamA)
			teamBJSON, _ := json.Marshal(m.TeamB)
			teamANamesJSON, _ := json.Marshal(m.TeamANames)
			teamBNamesJSON, _ := json.Marshal(m.TeamBNames)
			allIDsJSON, _ := json.Marshal(m.AllPlayerIDs)
			_, err = tx.Exec(`
				UPDATE group_matches
				SET team_a_json = ?, team_b_json = ?, team_a_names_json = ?, team_b_names_json = ?, all_player_ids_json = ?
				WHERE id = ?
			`, string(teamAJSON), string(teamBJSON), string(teamANamesJSON), string(teamBNamesJSON), string(allIDsJSON), m.ID)
			if err != nil {
				tx.Rollback()
				return total, fmt.Errorf("failed to rewrite match %s: %w", m.ID, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return total, err
		}
		s.metrics.IncBatchCommits()
		total += len(batch)
	}
}

// escapeLike escapes LIKE metacharacters so ids such as "unregistered_x"
// match literally instead of treating "_" as a single-char wildcard.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// batchDelete removes all rows of a table belonging to a group, at most
// batchLimit per transaction.
func (s *store) batchDelete(table, groupID string) error {
	for {
		res, err := s.db.Exec(fmt.Sprintf(`
			DELETE FROM %s WHERE id IN (
				SELECT id FROM %s WHERE group_id = ? LIMIT ?
			)
		`, table, table), groupID, batchLimit)
		if err != nil {
			return fmt.Errorf("failed to clean up %s: %w", table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		s.metrics.IncBatchCommits()
		if affected < batchLimit {
			return nil
		}
	}
}

// replacePlayer swaps oldID for newID in a team, keeping names aligned. If
// newID already plays on the team the old entry is dropped instead, so ids
// stay unique.
func replacePlayer(ids, names []string, oldID, newID, newName string) ([]string, []string) {
	outIDs := []string{}
	outNames := []string{}
	seen := map[string]bool{}
	for i, id := range ids {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if id == oldID {
			id, name = newID, newName
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		outIDs = append(outIDs, id)
		outNames = append(outNames, name)
	}
	return outIDs, outNames
}

func dedupeTeam(ids, names []string) ([]string, []string) {
	outIDs := []string{}
	outNames := []string{}
	seen := map[string]bool{}
	for i, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		outIDs = append(outIDs, id)
		name := ""
		if i < len(names) {
			name = names[i]
		}
		outNames = append(outNames, name)
	}
	return outIDs, outNames
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*Group, error) {
	var g Group
	var createdAt int64
	var memberIDsJSON string
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedBy, &createdAt, &memberIDsJSON); err != nil {
		return nil, err
	}
	g.CreatedAt = time.Unix(createdAt, 0)
	if err := json.Unmarshal([]byte(memberIDsJSON), &g.MemberIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member ids: %w", err)
	}
	return &g, nil
}

func scanGroupMatch(row rowScanner) (*scoring.GroupMatch, error) {
	var m scoring.GroupMatch
	var teamAJSON, teamBJSON, teamANamesJSON, teamBNamesJSON, allIDsJSON, winning string
	var matchDate, createdAt int64
	err := row.Scan(&m.ID, &m.GroupID, &teamAJSON, &teamBJSON, &teamANamesJSON, &teamBNamesJSON,
		&winning, &matchDate, &createdAt, &m.CreatedBy, &m.PointsAwarded, &allIDsJSON)
	if err != nil {
		return nil, err
	}
	m.WinningTeam = scoring.Team(winning)
	m.Date = time.Unix(matchDate, 0)
	m.CreatedAt = time.Unix(createdAt, 0)
	for _, col := range []struct {
		src string
		dst *[]string
	}{
		{teamAJSON, &m.TeamA},
		{teamBJSON, &m.TeamB},
		{teamANamesJSON, &m.TeamANames},
		{teamBNamesJSON, &m.TeamBNames},
		{allIDsJSON, &m.AllPlayerIDs},
	} {
		if err := json.Unmarshal([]byte(col.src), col.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match lists: %w", err)
		}
	}
	return &m, nil
}
