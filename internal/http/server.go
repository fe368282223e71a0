package http

import (
	"net/http"

	"github.com/cuescore/cuescore/internal/auth"
	"github.com/cuescore/cuescore/internal/config"
	"github.com/cuescore/cuescore/internal/friend"
	"github.com/cuescore/cuescore/internal/group"
	"github.com/cuescore/cuescore/internal/i18n"
	"github.com/cuescore/cuescore/internal/identity"
	"github.com/cuescore/cuescore/internal/metrics"
	"github.com/cuescore/cuescore/internal/notifier"
	"github.com/cuescore/cuescore/internal/pubsub"
	"github.com/cuescore/cuescore/internal/stream"
)

func NewServer(
	users identity.UserStore,
	friends friend.FriendStore,
	groups group.GroupStore,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	notifier notifier.Notifier,
	pubsubClient pubsub.PubSubClient,
	streams *stream.HubManager,
	verifier *auth.Verifier,
	bundle *i18n.Bundle,
) *Server {
	server := &Server{
		Users:          users,
		Friends:        friends,
		Groups:         groups,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		PubSub:         pubsubClient,
		Streams:        streams,
		Auth:           verifier,
		I18n:           bundle,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	authed := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.Auth.Middleware)
	}

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	// Identity
	s.Router.Handle("POST /users", authed(s.RegisterUserHandler()))
	s.Router.Handle("GET /users", authed(s.SearchUsersHandler()))
	s.Router.Handle("GET /users/availability", authed(s.UsernameAvailabilityHandler()))
	s.Router.Handle("GET /users/{id}", authed(s.GetUserHandler()))

	// Friends and 1v1 matches
	s.Router.Handle("POST /friends/requests", authed(s.SendFriendRequestHandler()))
	s.Router.Handle("GET /friends/requests", authed(s.ListFriendRequestsHandler()))
	s.Router.Handle("POST /friends/requests/{id}/accept", authed(s.AcceptFriendRequestHandler()))
	s.Router.Handle("POST /friends/requests/{id}/reject", authed(s.RejectFriendRequestHandler()))
	s.Router.Handle("GET /friends", authed(s.ListFriendsHandler()))
	s.Router.Handle("GET /friends/{id}/matches", authed(s.FriendMatchesHandler()))
	s.Router.Handle("GET /friends/{id}/head-to-head", authed(s.HeadToHeadHandler()))
	s.Router.Handle("POST /matches", authed(s.RecordFriendMatchHandler()))
	s.Router.Handle("DELETE /matches/{id}", authed(s.DeleteFriendMatchHandler()))

	// Groups
	s.Router.Handle("POST /groups", authed(s.CreateGroupHandler()))
	s.Router.Handle("GET /groups", authed(s.ListGroupsHandler()))
	s.Router.Handle("GET /groups/{id}", authed(s.GetGroupHandler()))
	s.Router.Handle("DELETE /groups/{id}", authed(s.DeleteGroupHandler()))
	s.Router.Handle("POST /groups/{id}/members", authed(s.AddGroupMemberHandler()))
	s.Router.Handle("GET /groups/{id}/members", authed(s.ListGroupMembersHandler()))
	s.Router.Handle("POST /groups/{id}/guests", authed(s.CreateGuestHandler()))
	s.Router.Handle("GET /groups/{id}/guests", authed(s.ListGuestsHandler()))
	s.Router.Handle("POST /groups/{id}/guests/{guestID}/link", authed(s.LinkGuestHandler()))
	s.Router.Handle("POST /groups/{id}/matches", authed(s.RecordGroupMatchHandler()))
	s.Router.Handle("GET /groups/{id}/matches", authed(s.ListGroupMatchesHandler()))
	s.Router.Handle("DELETE /groups/{id}/matches/{matchID}", authed(s.DeleteGroupMatchHandler()))
	s.Router.Handle("GET /groups/{id}/rankings", authed(s.RankingsHandler()))
	s.Router.Handle("POST /groups/{id}/rankings/notify", authed(s.NotifyRankingsHandler()))
	s.Router.Handle("PUT /groups/{id}/preferences", authed(s.SetPreferenceHandler()))
	s.Router.Handle("GET /groups/{id}/stream", authed(s.StreamHandler()))

	// Pub/Sub push endpoints
	s.Router.Handle("POST /events/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("POST /events/guest-linked", Chain(s.GuestLinkedEventHandler(), paramsMiddleware))
	s.Router.Handle("POST /events/group-deleted", Chain(s.GroupDeletedEventHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
