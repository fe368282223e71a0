package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/cuescore/cuescore/internal/pubsub"
)

// decodePushPayload unwraps a Pub/Sub push delivery: an outer JSON envelope
// whose message data is the base64-encoded MessagePack event.
func decodePushPayload(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	var pushMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pushMsg); err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(pushMsg.Message.Data)
}

// NotifyResultHandler consumes recorded-match events and sends the result
// notification.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushPayload(r)
		if err != nil {
			log.Error("Failed to decode push payload", "error", err)
			http.Error(w, "Invalid push payload", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		event := pubsub.ResultEvent{}
		if err := s.PubSub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		g, err := s.Groups.GetGroup(event.GroupID)
		if err != nil {
			// The group may already be gone; acknowledge so the message is
			// not redelivered forever.
			log.Warn("Group gone before result notification", "groupID", event.GroupID)
			w.Write([]byte("OK"))
			return
		}

		matches, err := s.Groups.ListMatches(event.GroupID)
		if err != nil {
			log.Error("Failed to load matches for notification", "error", err)
			http.Error(w, "Failed to load match", http.StatusInternalServerError)
			return
		}
		for i := range matches {
			if matches[i].ID == event.MatchID {
				if err := s.Notifier.SendResultNotification(&matches[i], g.Name, isDryRun); err != nil {
					log.Error("Failed to send result notification", "error", err)
					http.Error(w, "Failed to notify result", http.StatusInternalServerError)
					return
				}
				break
			}
		}
		w.Write([]byte("OK"))
	}
}

// GuestLinkedEventHandler consumes guest-linked events and announces the
// linked player.
func (s *Server) GuestLinkedEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushPayload(r)
		if err != nil {
			log.Error("Failed to decode push payload", "error", err)
			http.Error(w, "Invalid push payload", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		event := pubsub.GuestLinkedEvent{}
		if err := s.PubSub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		g, err := s.Groups.GetGroup(event.GroupID)
		if err != nil {
			log.Warn("Group gone before guest linked notification", "groupID", event.GroupID)
			w.Write([]byte("OK"))
			return
		}
		user, err := s.Users.GetUser(event.UserID)
		if err != nil {
			log.Error("Failed to look up linked user", "error", err)
			http.Error(w, "Failed to look up user", http.StatusInternalServerError)
			return
		}

		guestName := event.GuestID
		if guests, err := s.Groups.ListGuests(event.GroupID); err == nil {
			for _, guest := range guests {
				if guest.ID == event.GuestID {
					guestName = guest.Name
					break
				}
			}
		}

		if err := s.Notifier.SendGuestLinked(g.Name, guestName, user.DisplayName, isDryRun); err != nil {
			log.Error("Failed to send guest linked notification", "error", err)
			http.Error(w, "Failed to notify", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// GroupDeletedEventHandler consumes group-deleted events and announces the
// removal.
func (s *Server) GroupDeletedEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushPayload(r)
		if err != nil {
			log.Error("Failed to decode push payload", "error", err)
			http.Error(w, "Invalid push payload", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		event := pubsub.GroupDeletedEvent{}
		if err := s.PubSub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		if err := s.Notifier.SendGroupDeleted(event.GroupName, isDryRun); err != nil {
			log.Error("Failed to send group deleted notification", "error", err)
			http.Error(w, "Failed to notify", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
