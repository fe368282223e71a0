package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventNotifyResult EventType = "notify-result"
	EventGuestLinked  EventType = "guest-linked"
	EventGroupDeleted EventType = "group-deleted"
)

// ResultEvent is published after a group match is recorded.
type ResultEvent struct {
	MatchID string `msgpack:"match_id"`
	GroupID string `msgpack:"group_id"`
}

// GuestLinkedEvent is published after a guest is merged into a registered
// account.
type GuestLinkedEvent struct {
	GroupID string `msgpack:"group_id"`
	GuestID string `msgpack:"guest_id"`
	UserID  string `msgpack:"user_id"`
}

// GroupDeletedEvent is published after a group and its dependents are gone.
type GroupDeletedEvent struct {
	GroupID   string `msgpack:"group_id"`
	GroupName string `msgpack:"group_name"`
}
