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

type Server struct {
	Users          identity.UserStore
	Friends        friend.FriendStore
	Groups         group.GroupStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Streams        *stream.HubManager
	Auth           *auth.Verifier
	I18n           *i18n.Bundle
	Router         *http.ServeMux
}
