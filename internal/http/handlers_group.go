package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cuescore/cuescore/internal/auth"
	"github.com/cuescore/cuescore/internal/group"
	"github.com/cuescore/cuescore/internal/i18n"
	"github.com/cuescore/cuescore/internal/identity"
	"github.com/cuescore/cuescore/internal/pubsub"
	"github.com/cuescore/cuescore/internal/scoring"
	"github.com/cuescore/cuescore/internal/stream"
)

func (s *Server) CreateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		g, err := s.Groups.CreateGroup(body.Name, auth.UserID(r), auth.UserName(r))
		if err != nil {
			log.Error("Failed to create group", "error", err)
			writeMessage(w, http.StatusBadRequest, s.I18n.T(s.locale(r), "group.createError", nil))
			return
		}
		writeJSON(w, http.StatusCreated, g)
	}
}

func (s *Server) ListGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.Groups.ListGroupsForUser(auth.UserID(r))
		if err != nil {
			log.Error("Failed to list groups", "error", err)
			http.Error(w, "Failed to list groups", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func (s *Server) GetGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := s.Groups.GetGroup(r.PathValue("id"))
		if err != nil {
			s.writeGroupError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"group":         g,
			"members_label": s.I18n.T(s.locale(r), "group.membersCount", i18n.Values{"count": strconv.Itoa(len(g.MemberIDs))}),
		})
	}
}

func (s *Server) DeleteGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")
		isDryRun := isDryRunFromContext(r)

		g, err := s.Groups.GetGroup(groupID)
		if err != nil {
			s.writeGroupError(w, r, err)
			return
		}
		if g.CreatedBy != auth.UserID(r) {
			writeMessage(w, http.StatusForbidden, s.I18n.T(s.locale(r), "group.deleteGroupUnauthorized", nil))
			return
		}
		if isDryRun {
			log.Info("[Dry Run] Would delete group", "groupID", groupID, "name", g.Name)
			writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.deleted", nil))
			return
		}

		s.Metrics.IncSagasRun("delete_group")
		start := time.Now()
		err = s.Groups.DeleteGroup(groupID, auth.UserID(r))
		s.Metrics.ObserveSagaDuration(time.Since(start).Seconds())
		if err != nil {
			locale := s.locale(r)
			switch {
			case errors.Is(err, group.ErrNotGroupOwner):
				writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "group.deleteGroupUnauthorized", nil))
			case errors.Is(err, group.ErrGroupNotFound):
				writeMessage(w, http.StatusNotFound, s.I18n.T(locale, "group.notFound", nil))
			default:
				s.Metrics.IncSagasFailed("delete_group")
				log.Error("Failed to delete group", "error", err, "groupID", groupID)
				writeMessage(w, http.StatusInternalServerError, s.I18n.T(locale, "group.deleteGroupError", nil))
			}
			return
		}

		if err := s.PubSub.SendMessage(pubsub.EventGroupDeleted, pubsub.GroupDeletedEvent{
			GroupID:   groupID,
			GroupName: g.Name,
		}); err != nil {
			log.Error("Failed to publish group deleted event", "error", err)
		}
		s.Streams.RemoveHub(groupID)
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.deleted", nil))
	}
}

func (s *Server) AddGroupMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		user, err := s.Users.GetUser(body.UserID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to look up user", "error", err)
			http.Error(w, "Failed to add member", http.StatusInternalServerError)
			return
		}

		if err := s.Groups.AddMember(r.PathValue("id"), user.ID, user.DisplayName, auth.UserID(r)); err != nil {
			switch {
			case errors.Is(err, group.ErrGroupNotFound):
				s.writeGroupError(w, r, err)
			case errors.Is(err, group.ErrNotMember):
				writeMessage(w, http.StatusForbidden, s.I18n.T(s.locale(r), "auth.unauthorized", nil))
			default:
				log.Error("Failed to add member", "error", err)
				writeMessage(w, http.StatusInternalServerError, s.I18n.T(s.locale(r), "group.addMemberError", nil))
			}
			return
		}
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.saved", nil))
	}
}

func (s *Server) ListGroupMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.Groups.ListMembers(r.PathValue("id"))
		if err != nil {
			log.Error("Failed to list members", "error", err)
			http.Error(w, "Failed to list members", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func (s *Server) CreateGuestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		guest, err := s.Groups.CreateGuest(r.PathValue("id"), body.Name, auth.UserID(r))
		if err != nil {
			locale := s.locale(r)
			switch {
			case errors.Is(err, group.ErrGuestNameTaken):
				writeMessage(w, http.StatusConflict, s.I18n.T(locale, "group.unregisteredNameExists", nil))
			case errors.Is(err, group.ErrGroupNotFound):
				writeMessage(w, http.StatusNotFound, s.I18n.T(locale, "group.notFound", nil))
			case errors.Is(err, group.ErrNotMember):
				writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "auth.unauthorized", nil))
			default:
				log.Error("Failed to create guest", "error", err)
				writeMessage(w, http.StatusBadRequest, s.I18n.T(locale, "group.createUnregisteredError", nil))
			}
			return
		}
		writeJSON(w, http.StatusCreated, guest)
	}
}

func (s *Server) ListGuestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guests, err := s.Groups.ListGuests(r.PathValue("id"))
		if err != nil {
			log.Error("Failed to list guests", "error", err)
			http.Error(w, "Failed to list guests", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, guests)
	}
}

func (s *Server) LinkGuestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		groupID := r.PathValue("id")
		guestID := r.PathValue("guestID")

		user, err := s.Users.GetUser(body.UserID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to look up user", "error", err)
			http.Error(w, "Failed to link guest", http.StatusInternalServerError)
			return
		}

		s.Metrics.IncSagasRun("link_guest")
		start := time.Now()
		err = s.Groups.LinkGuest(groupID, guestID, user.ID, user.DisplayName, auth.UserID(r))
		s.Metrics.ObserveSagaDuration(time.Since(start).Seconds())
		if err != nil {
			locale := s.locale(r)
			switch {
			case errors.Is(err, group.ErrGuestNotFound):
				http.Error(w, "Guest not found", http.StatusNotFound)
			case errors.Is(err, group.ErrGroupNotFound):
				writeMessage(w, http.StatusNotFound, s.I18n.T(locale, "group.notFound", nil))
			case errors.Is(err, group.ErrNotMember):
				writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "auth.unauthorized", nil))
			default:
				s.Metrics.IncSagasFailed("link_guest")
				log.Error("Failed to link guest", "error", err, "groupID", groupID, "guestID", guestID)
				writeMessage(w, http.StatusInternalServerError, s.I18n.T(locale, "group.linkUserError", nil))
			}
			return
		}

		if err := s.PubSub.SendMessage(pubsub.EventGuestLinked, pubsub.GuestLinkedEvent{
			GroupID: groupID,
			GuestID: guestID,
			UserID:  user.ID,
		}); err != nil {
			log.Error("Failed to publish guest linked event", "error", err)
		}
		s.Streams.Publish(groupID, "guest-linked", map[string]string{
			"guest_id": guestID,
			"user_id":  user.ID,
		})
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.saved", nil))
	}
}

func (s *Server) RecordGroupMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TeamA       []string  `json:"team_a"`
			TeamB       []string  `json:"team_b"`
			WinningTeam string    `json:"winning_team"`
			Date        time.Time `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		groupID := r.PathValue("id")
		roster, err := s.Groups.Roster(groupID)
		if err != nil {
			s.writeGroupError(w, r, err)
			return
		}

		match := &scoring.GroupMatch{
			GroupID:     groupID,
			TeamA:       body.TeamA,
			TeamB:       body.TeamB,
			TeamANames:  namesFor(roster, body.TeamA),
			TeamBNames:  namesFor(roster, body.TeamB),
			WinningTeam: scoring.Team(body.WinningTeam),
			Date:        body.Date,
			CreatedBy:   auth.UserID(r),
		}
		if match.Date.IsZero() {
			match.Date = time.Now()
		}

		if err := s.Groups.RecordMatch(match); err != nil {
			locale := s.locale(r)
			if errors.Is(err, group.ErrNotMember) {
				writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "auth.unauthorized", nil))
				return
			}
			log.Error("Failed to record group match", "error", err)
			writeMessage(w, http.StatusBadRequest, s.I18n.T(locale, "group.invalidTeams", nil))
			return
		}
		s.Metrics.IncMatchesRecorded()

		if err := s.PubSub.SendMessage(pubsub.EventNotifyResult, pubsub.ResultEvent{
			MatchID: match.ID,
			GroupID: match.GroupID,
		}); err != nil {
			log.Error("Failed to publish result event", "error", err)
		}
		s.Streams.Publish(groupID, "match-recorded", match)
		writeJSON(w, http.StatusCreated, match)
	}
}

// namesFor resolves player ids to roster display names, keeping positions
// aligned with the input. Unknown ids resolve to empty strings and are
// rejected by validation later.
func namesFor(roster scoring.Roster, ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = roster[id]
	}
	return names
}

func (s *Server) ListGroupMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Groups.ListMatches(r.PathValue("id"))
		if err != nil {
			log.Error("Failed to list group matches", "error", err)
			http.Error(w, "Failed to list matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) DeleteGroupMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Groups.DeleteMatch(r.PathValue("matchID"), auth.UserID(r))
		if err != nil {
			locale := s.locale(r)
			switch {
			case errors.Is(err, group.ErrMatchNotFound):
				http.Error(w, "Match not found", http.StatusNotFound)
			case errors.Is(err, group.ErrNotMatchCreator):
				writeMessage(w, http.StatusForbidden, s.I18n.T(locale, "group.deleteMatchUnauthorized", nil))
			default:
				log.Error("Failed to delete group match", "error", err)
				writeMessage(w, http.StatusInternalServerError, s.I18n.T(locale, "group.deleteMatchError", nil))
			}
			return
		}
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.deleted", nil))
	}
}

func (s *Server) RankingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")

		cutoff, err := periodCutoff(r.URL.Query().Get("period"), time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sortBy := scoring.SortOption(r.URL.Query().Get("sort"))
		if sortBy == "" {
			// Fall back to the caller's saved preference for this group.
			sortBy, err = s.Groups.GetPreferredView(auth.UserID(r), groupID)
			if err != nil {
				log.Error("Failed to load ranking preference", "error", err)
				sortBy = scoring.SortByPoints
			}
		}
		if sortBy != scoring.SortByPoints && sortBy != scoring.SortByWinPercentage {
			http.Error(w, "Invalid 'sort' parameter", http.StatusBadRequest)
			return
		}

		roster, err := s.Groups.Roster(groupID)
		if err != nil {
			s.writeGroupError(w, r, err)
			return
		}
		matches, err := s.Groups.ListMatches(groupID)
		if err != nil {
			log.Error("Failed to load matches for rankings", "error", err)
			http.Error(w, "Failed to compute rankings", http.StatusInternalServerError)
			return
		}

		rankings := scoring.CalculateGroupRankings(matches, roster, cutoff, sortBy)
		writeJSON(w, http.StatusOK, rankings)
	}
}

// NotifyRankingsHandler posts the current standings to the group's channel
// and returns the formatted digest to the caller.
func (s *Server) NotifyRankingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")

		cutoff, err := periodCutoff(r.URL.Query().Get("period"), time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		g, err := s.Groups.GetGroup(groupID)
		if err != nil {
			s.writeGroupError(w, r, err)
			return
		}
		roster, err := s.Groups.Roster(groupID)
		if err != nil {
			s.writeGroupError(w, r, err)
			return
		}
		matches, err := s.Groups.ListMatches(groupID)
		if err != nil {
			log.Error("Failed to load matches for rankings", "error", err)
			http.Error(w, "Failed to compute rankings", http.StatusInternalServerError)
			return
		}

		rankings := scoring.CalculateGroupRankings(matches, roster, cutoff, scoring.SortByPoints)
		if err := s.Notifier.SendRankings(g.Name, rankings, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send rankings", "error", err, "groupID", groupID)
			writeMessage(w, http.StatusInternalServerError, s.I18n.T(s.locale(r), "common.error", nil))
			return
		}

		formatted, err := s.Notifier.FormatRankingsResponse(g.Name, rankings)
		if err != nil {
			log.Error("Failed to format rankings", "error", err)
			http.Error(w, "Failed to format rankings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, formatted)
	}
}

func (s *Server) SetPreferenceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PreferredView string `json:"preferred_view"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		err := s.Groups.SetPreferredView(auth.UserID(r), r.PathValue("id"), scoring.SortOption(body.PreferredView))
		if err != nil {
			http.Error(w, "Invalid 'preferred_view'", http.StatusBadRequest)
			return
		}
		writeMessage(w, http.StatusOK, s.I18n.T(s.locale(r), "common.saved", nil))
	}
}

// StreamHandler holds an SSE connection open and forwards the group's live
// events to it.
func (s *Server) StreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")
		if _, err := s.Groups.GetGroup(groupID); err != nil {
			s.writeGroupError(w, r, err)
			return
		}
		hub := s.Streams.GetOrCreateHub(groupID)
		stream.ServeSSE(w, r, hub)
	}
}

func (s *Server) writeGroupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, group.ErrGroupNotFound) {
		writeMessage(w, http.StatusNotFound, s.I18n.T(s.locale(r), "group.notFound", nil))
		return
	}
	log.Error("Group lookup failed", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
