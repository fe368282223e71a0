package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cuescore/cuescore/internal/auth"
	"github.com/cuescore/cuescore/internal/friend"
	"github.com/cuescore/cuescore/internal/identity"
	"github.com/cuescore/cuescore/internal/scoring"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeMessage sends a localized, user-facing message.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// locale picks the response language from the Accept-Language header,
// falling back to the configured default.
func (s *Server) locale(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return s.Cfg.DefaultLocale
	}
	first := strings.TrimSpace(strings.Split(header, ",")[0])
	if i := strings.IndexAny(first, "-;"); i > 0 {
		first = first[:i]
	}
	if first == "" {
		return s.Cfg.DefaultLocale
	}
	return first
}

// periodCutoff maps a period query value to the matching cutoff date. An
// empty or "all" period returns the zero time, which disables filtering.
func periodCutoff(period string, now time.Time) (time.Time, error) {
	switch period {
	case "", "all":
		return time.Time{}, nil
	case "day":
		return scoring.StartOfDay(now), nil
	case "week":
		return scoring.StartOfWeek(now), nil
	case "month":
		return scoring.StartOfMonth(now), nil
	case "year":
		return scoring.StartOfYear(now), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

func (s *Server) RegisterUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DisplayName string `json:"display_name"`
			Email       string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		user := identity.UserInfo{
			ID:          auth.UserID(r),
			DisplayName: body.DisplayName,
			Email:       body.Email,
		}
		err := s.Users.RegisterUser(user)
		if err != nil {
			if errors.Is(err, identity.ErrUsernameTaken) {
				writeMessage(w, http.StatusConflict, s.I18n.T(s.locale(r), "auth.usernameTaken", nil))
				return
			}
			log.Error("Failed to register user", "error", err)
			writeMessage(w, http.StatusInternalServerError, s.I18n.T(s.locale(r), "auth.usernameSaveError", nil))
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Users.GetUser(r.PathValue("id"))
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to get user", "error", err)
			http.Error(w, "Failed to get user", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) SearchUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("search")
		users, err := s.Users.SearchUsers(query, auth.UserID(r))
		if err != nil {
			log.Error("Failed to search users", "error", err)
			http.Error(w, "Failed to search users", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func (s *Server) UsernameAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Missing 'name' parameter", http.StatusBadRequest)
			return
		}
		available, err := s.Users.UsernameAvailable(name)
		if err != nil {
			log.Error("Failed to check username", "error", err)
			http.Error(w, "Failed to check username", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"available": available})
	}
}

func (s *Server) SendFriendRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ToUserID string `json:"to_user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		recipient, err := s.Users.GetUser(body.ToUserID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to look up recipient", "error", err)
			http.Error(w, "Failed to send friend request", http.StatusInternalServerError)
			return
		}

		request, err := s.Friends.SendRequest(auth.UserID(r), auth.UserName(r), recipient.ID, recipient.DisplayName)
		if err != nil {
			log.Error("Failed to send friend request", "error", err)
			http.Error(w, "Failed to send friend request", http.StatusInternalServerError)
			return
		}
		if request == nil {
			// Already friends or already pending; nothing new was created.
			writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "friend.requestSent", nil))
			return
		}
		writeJSON(w, http.StatusCreated, request)
	}
}

func (s *Server) ListFriendRequestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			requests []friend.Request
			err      error
		)
		if r.URL.Query().Get("sent") == "true" {
			requests, err = s.Friends.ListSentRequests(auth.UserID(r))
		} else {
			requests, err = s.Friends.ListPendingRequests(auth.UserID(r))
		}
		if err != nil {
			log.Error("Failed to list friend requests", "error", err)
			http.Error(w, "Failed to list friend requests", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, requests)
	}
}

func (s *Server) AcceptFriendRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncSagasRun("accept_friend_request")
		start := time.Now()

		err := s.Friends.AcceptRequest(r.PathValue("id"), auth.UserID(r))
		s.Metrics.ObserveSagaDuration(time.Since(start).Seconds())
		if err != nil {
			s.writeFriendRequestError(w, r, err, "friend.acceptError", "accept_friend_request")
			return
		}
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.saved", nil))
	}
}

func (s *Server) RejectFriendRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Friends.RejectRequest(r.PathValue("id"), auth.UserID(r))
		if err != nil {
			s.writeFriendRequestError(w, r, err, "friend.rejectError", "")
			return
		}
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.deleted", nil))
	}
}

func (s *Server) writeFriendRequestError(w http.ResponseWriter, r *http.Request, err error, fallbackKey, saga string) {
	locale := s.locale(r)
	switch {
	case errors.Is(err, friend.ErrRequestNotFound):
		// The other party resolved the request first; reported, not fatal.
		writeMessage(w, http.StatusNotFound, s.I18n.T(locale, "friend.requestMissingError", nil))
	case errors.Is(err, friend.ErrRequestNotPending):
		writeMessage(w, http.StatusConflict, s.I18n.T(locale, "friend.requestNotPendingError", nil))
	case errors.Is(err, friend.ErrNotRecipient):
		writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "auth.unauthorized", nil))
	default:
		if saga != "" {
			s.Metrics.IncSagasFailed(saga)
		}
		log.Error("Friend request operation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, s.I18n.T(locale, fallbackKey, nil))
	}
}

func (s *Server) ListFriendsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friends, err := s.Friends.ListFriends(auth.UserID(r))
		if err != nil {
			log.Error("Failed to list friends", "error", err)
			http.Error(w, "Failed to list friends", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, friends)
	}
}

func (s *Server) FriendMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Friends.GetMatchesWithFriend(auth.UserID(r), r.PathValue("id"))
		if err != nil {
			log.Error("Failed to list matches", "error", err)
			http.Error(w, "Failed to list matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) HeadToHeadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r)
		friendID := r.PathValue("id")

		cutoff, err := periodCutoff(r.URL.Query().Get("period"), time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		matches, err := s.Friends.GetMatchesWithFriend(userID, friendID)
		if err != nil {
			log.Error("Failed to load matches for head-to-head", "error", err)
			http.Error(w, "Failed to compute head-to-head", http.StatusInternalServerError)
			return
		}
		history := friendMatchesToScoring(matches)

		// Group-recorded 1v1s between the pair count too; the engine skips
		// anything with larger teams.
		groups, err := s.Groups.ListGroupsForUser(userID)
		if err != nil {
			log.Error("Failed to load groups for head-to-head", "error", err)
			http.Error(w, "Failed to compute head-to-head", http.StatusInternalServerError)
			return
		}
		for _, g := range groups {
			if !slices.Contains(g.MemberIDs, friendID) {
				continue
			}
			groupMatches, err := s.Groups.ListMatches(g.ID)
			if err != nil {
				log.Error("Failed to load group matches for head-to-head", "error", err, "groupID", g.ID)
				http.Error(w, "Failed to compute head-to-head", http.StatusInternalServerError)
				return
			}
			history = append(history, groupMatches...)
		}

		stats := scoring.HeadToHead(history, userID, friendID, cutoff)
		writeJSON(w, http.StatusOK, stats)
	}
}

// friendMatchesToScoring converts 1v1 matches into the single-player-team
// shape the ranking engine understands.
func friendMatchesToScoring(matches []friend.Match) []scoring.GroupMatch {
	out := make([]scoring.GroupMatch, 0, len(matches))
	for _, m := range matches {
		winning := scoring.TeamA
		if m.WinnerID == m.Player2ID {
			winning = scoring.TeamB
		}
		out = append(out, scoring.GroupMatch{
			ID:            m.ID,
			TeamA:         []string{m.Player1ID},
			TeamB:         []string{m.Player2ID},
			TeamANames:    []string{m.Player1Name},
			TeamBNames:    []string{m.Player2Name},
			WinningTeam:   winning,
			Date:          m.Date,
			PointsAwarded: 1,
			AllPlayerIDs:  m.Players,
		})
	}
	return out
}

func (s *Server) RecordFriendMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			OpponentID string    `json:"opponent_id"`
			WinnerID   string    `json:"winner_id"`
			Date       time.Time `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		opponent, err := s.Users.GetUser(body.OpponentID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to look up opponent", "error", err)
			http.Error(w, "Failed to record match", http.StatusInternalServerError)
			return
		}

		callerID, callerName := auth.UserID(r), auth.UserName(r)
		areFriends, err := s.Friends.AreFriends(callerID, opponent.ID)
		if err != nil {
			log.Error("Failed to check friendship", "error", err)
			http.Error(w, "Failed to record match", http.StatusInternalServerError)
			return
		}
		if !areFriends {
			writeMessage(w, http.StatusForbidden, s.I18n.T(s.locale(r), "auth.unauthorized", nil))
			return
		}

		match := &friend.Match{
			Player1ID:   callerID,
			Player1Name: callerName,
			Player2ID:   opponent.ID,
			Player2Name: opponent.DisplayName,
			WinnerID:    body.WinnerID,
			Date:        body.Date,
			CreatedBy:   callerID,
		}
		if match.WinnerID == callerID {
			match.WinnerName = callerName
		} else {
			match.WinnerName = opponent.DisplayName
		}
		if match.Date.IsZero() {
			match.Date = time.Now()
		}

		if err := s.Friends.RecordMatch(match); err != nil {
			log.Error("Failed to record match", "error", err)
			writeMessage(w, http.StatusBadRequest, s.I18n.T(s.locale(r), "friend.saveMatchError", nil))
			return
		}
		s.Metrics.IncMatchesRecorded()
		writeJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) DeleteFriendMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Friends.DeleteMatch(r.PathValue("id"), auth.UserID(r))
		if err != nil {
			locale := s.locale(r)
			switch {
			case errors.Is(err, friend.ErrMatchNotFound):
				http.Error(w, "Match not found", http.StatusNotFound)
			case errors.Is(err, friend.ErrNotMatchCreator):
				writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "auth.unauthorized", nil))
			default:
				log.Error("Failed to delete match", "error", err)
				writeMessage(w, http.StatusInternalServerError, s.I18n.T(locale, "friend.deleteMatchError", nil))
			}
			return
		}
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.deleted", nil))
	}
}
