package notifier

import (
	"sync"

	"github.com/cuescore/cuescore/internal/scoring"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendResultNotificationFunc func(match *scoring.GroupMatch, groupName string, dryRun bool) error
	SendRankingsFunc           func(groupName string, rankings []scoring.Ranking, dryRun bool) error
	FormatRankingsResponseFunc func(groupName string, rankings []scoring.Ranking) (any, error)

	// Call records
	SendResultNotificationCalls []struct {
		Match     *scoring.GroupMatch
		GroupName string
	}
	SendRankingsCalls []struct {
		GroupName string
		Rankings  []scoring.Ranking
	}
	SendGuestLinkedCalls []struct {
		GroupName, GuestName, UserName string
	}
	SendGroupDeletedCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendRankingsCalls = nil
	m.SendGuestLinkedCalls = nil
	m.SendGroupDeletedCalls = nil
}

func (m *Mock) SendResultNotification(match *scoring.GroupMatch, groupName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match     *scoring.GroupMatch
		GroupName string
	}{match, groupName})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, groupName, dryRun)
	}
	return nil
}

func (m *Mock) SendRankings(groupName string, rankings []scoring.Ranking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingsCalls = append(m.SendRankingsCalls, struct {
		GroupName string
		Rankings  []scoring.Ranking
	}{groupName, rankings})
	if m.SendRankingsFunc != nil {
		return m.SendRankingsFunc(groupName, rankings, dryRun)
	}
	return nil
}

func (m *Mock) SendGuestLinked(groupName, guestName, userName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGuestLinkedCalls = append(m.SendGuestLinkedCalls, struct {
		GroupName, GuestName, UserName string
	}{groupName, guestName, userName})
	return nil
}

func (m *Mock) SendGroupDeleted(groupName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGroupDeletedCalls = append(m.SendGroupDeletedCalls, groupName)
	return nil
}

func (m *Mock) FormatRankingsResponse(groupName string, rankings []scoring.Ranking) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRankingsResponseFunc != nil {
		return m.FormatRankingsResponseFunc(groupName, rankings)
	}
	return "formatted_rankings", nil
}
