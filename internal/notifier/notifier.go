package notifier

import (
	"github.com/cuescore/cuescore/internal/scoring"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed group matches
	SendResultNotification(match *scoring.GroupMatch, groupName string, dryRun bool) error
	// For current standings
	SendRankings(groupName string, rankings []scoring.Ranking, dryRun bool) error
	// For roster changes
	SendGuestLinked(groupName, guestName, userName string, dryRun bool) error
	SendGroupDeleted(groupName string, dryRun bool) error

	// For formatting standings as a response payload
	FormatRankingsResponse(groupName string, rankings []scoring.Ranking) (any, error)
}
