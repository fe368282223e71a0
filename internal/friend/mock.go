package friend

// MockStore is a mock implementation of the FriendStore interface for testing.
type MockStore struct {
	SendRequestFunc          func(fromID, fromName, toID, toName string) (*Request, error)
	AcceptRequestFunc        func(requestID, callerID string) error
	RejectRequestFunc        func(requestID, callerID string) error
	ListPendingRequestsFunc  func(toUserID string) ([]Request, error)
	ListSentRequestsFunc     func(fromUserID string) ([]Request, error)
	ListFriendsFunc          func(userID string) ([]Friend, error)
	AreFriendsFunc           func(userID, friendID string) (bool, error)
	RecordMatchFunc          func(match *Match) error
	DeleteMatchFunc          func(matchID, callerID string) error
	GetMatchesWithFriendFunc func(userID, friendID string) ([]Match, error)

	SendRequestCalls   []struct{ FromID, FromName, ToID, ToName string }
	AcceptRequestCalls []struct{ RequestID, CallerID string }
	RejectRequestCalls []struct{ RequestID, CallerID string }
	RecordMatchCalls   []*Match
	DeleteMatchCalls   []struct{ MatchID, CallerID string }
}

// NewMockStore creates a new mock friend store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) SendRequest(fromID, fromName, toID, toName string) (*Request, error) {
	m.SendRequestCalls = append(m.SendRequestCalls, struct{ FromID, FromName, ToID, ToName string }{fromID, fromName, toID, toName})
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(fromID, fromName, toID, toName)
	}
	return &Request{FromUserID: fromID, ToUserID: toID, Status: StatusPending}, nil
}

func (m *MockStore) AcceptRequest(requestID, callerID string) error {
	m.AcceptRequestCalls = append(m.AcceptRequestCalls, struct{ RequestID, CallerID string }{requestID, callerID})
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(requestID, callerID)
	}
	return nil
}

func (m *MockStore) RejectRequest(requestID, callerID string) error {
	m.RejectRequestCalls = append(m.RejectRequestCalls, struct{ RequestID, CallerID string }{requestID, callerID})
	if m.RejectRequestFunc != nil {
		return m.RejectRequestFunc(requestID, callerID)
	}
	return nil
}

func (m *MockStore) ListPendingRequests(toUserID string) ([]Request, error) {
	if m.ListPendingRequestsFunc != nil {
		return m.ListPendingRequestsFunc(toUserID)
	}
	return []Request{}, nil
}

func (m *MockStore) ListSentRequests(fromUserID string) ([]Request, error) {
	if m.ListSentRequestsFunc != nil {
		return m.ListSentRequestsFunc(fromUserID)
	}
	return []Request{}, nil
}

func (m *MockStore) ListFriends(userID string) ([]Friend, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(userID)
	}
	return []Friend{}, nil
}

func (m *MockStore) AreFriends(userID, friendID string) (bool, error) {
	if m.AreFriendsFunc != nil {
		return m.AreFriendsFunc(userID, friendID)
	}
	return false, nil
}

func (m *MockStore) RecordMatch(match *Match) error {
	m.RecordMatchCalls = append(m.RecordMatchCalls, match)
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(match)
	}
	return nil
}

func (m *MockStore) DeleteMatch(matchID, callerID string) error {
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, struct{ MatchID, CallerID string }{matchID, callerID})
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(matchID, callerID)
	}
	return nil
}

func (m *MockStore) GetMatchesWithFriend(userID, friendID string) ([]Match, error) {
	if m.GetMatchesWithFriendFunc != nil {
		return m.GetMatchesWithFriendFunc(userID, friendID)
	}
	return []Match{}, nil
}

// Reset clears all recorded calls.
func (m *MockStore) Reset() {
	m.SendRequestCalls = nil
	m.AcceptRequestCalls = nil
	m.RejectRequestCalls = nil
	m.RecordMatchCalls = nil
	m.DeleteMatchCalls = nil
}
