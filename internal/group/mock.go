package group

import "github.com/cuescore/cuescore/internal/scoring"

// MockStore is a mock implementation of the GroupStore interface for testing.
type MockStore struct {
	CreateGroupFunc       func(name, creatorID, creatorName string) (*Group, error)
	GetGroupFunc          func(groupID string) (*Group, error)
	ListGroupsForUserFunc func(userID string) ([]Group, error)
	DeleteGroupFunc       func(groupID, callerID string) error
	AddMemberFunc         func(groupID, userID, userName, callerID string) error
	ListMembersFunc       func(groupID string) ([]Member, error)
	RosterFunc            func(groupID string) (scoring.Roster, error)
	CreateGuestFunc       func(groupID, name, createdBy string) (*Guest, error)
	ListGuestsFunc        func(groupID string) ([]Guest, error)
	LinkGuestFunc         func(groupID, guestID, userID, userName, callerID string) error
	RecordMatchFunc       func(match *scoring.GroupMatch) error
	DeleteMatchFunc       func(matchID, callerID string) error
	ListMatchesFunc       func(groupID string) ([]scoring.GroupMatch, error)
	SetPreferredViewFunc  func(userID, groupID string, view scoring.SortOption) error
	GetPreferredViewFunc  func(userID, groupID string) (scoring.SortOption, error)

	DeleteGroupCalls []struct{ GroupID, CallerID string }
	LinkGuestCalls   []struct{ GroupID, GuestID, UserID, UserName, CallerID string }
	RecordMatchCalls []*scoring.GroupMatch
	DeleteMatchCalls []struct{ MatchID, CallerID string }
}

// NewMockStore creates a new mock group store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateGroup(name, creatorID, creatorName string) (*Group, error) {
	if m.CreateGroupFunc != nil {
		return m.CreateGroupFunc(name, creatorID, creatorName)
	}
	return &Group{Name: name, CreatedBy: creatorID, MemberIDs: []string{creatorID}}, nil
}

func (m *MockStore) GetGroup(groupID string) (*Group, error) {
	if m.GetGroupFunc != nil {
		return m.GetGroupFunc(groupID)
	}
	return &Group{ID: groupID}, nil
}

func (m *MockStore) ListGroupsForUser(userID string) ([]Group, error) {
	if m.ListGroupsForUserFunc != nil {
		return m.ListGroupsForUserFunc(userID)
	}
	return []Group{}, nil
}

func (m *MockStore) DeleteGroup(groupID, callerID string) error {
	m.DeleteGroupCalls = append(m.DeleteGroupCalls, struct{ GroupID, CallerID string }{groupID, callerID})
	if m.DeleteGroupFunc != nil {
		return m.DeleteGroupFunc(groupID, callerID)
	}
	return nil
}

func (m *MockStore) AddMember(groupID, userID, userName, callerID string) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(groupID, userID, userName, callerID)
	}
	return nil
}

func (m *MockStore) ListMembers(groupID string) ([]Member, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(groupID)
	}
	return []Member{}, nil
}

func (m *MockStore) Roster(groupID string) (scoring.Roster, error) {
	if m.RosterFunc != nil {
		return m.RosterFunc(groupID)
	}
	return scoring.Roster{}, nil
}

func (m *MockStore) CreateGuest(groupID, name, createdBy string) (*Guest, error) {
	if m.CreateGuestFunc != nil {
		return m.CreateGuestFunc(groupID, name, createdBy)
	}
	return &Guest{ID: NewGuestID(), GroupID: groupID, Name: name, CreatedBy: createdBy}, nil
}

func (m *MockStore) ListGuests(groupID string) ([]Guest, error) {
	if m.ListGuestsFunc != nil {
		return m.ListGuestsFunc(groupID)
	}
	return []Guest{}, nil
}

func (m *MockStore) LinkGuest(groupID, guestID, userID, userName, callerID string) error {
	m.LinkGuestCalls = append(m.LinkGuestCalls, struct{ GroupID, GuestID, UserID, UserName, CallerID string }{groupID, guestID, userID, userName, callerID})
	if m.LinkGuestFunc != nil {
		return m.LinkGuestFunc(groupID, guestID, userID, userName, callerID)
	}
	return nil
}

func (m *MockStore) RecordMatch(match *scoring.GroupMatch) error {
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

func (m *MockStore) ListMatches(groupID string) ([]scoring.GroupMatch, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(groupID)
	}
	return []scoring.GroupMatch{}, nil
}

func (m *MockStore) SetPreferredView(userID, groupID string, view scoring.SortOption) error {
	if m.SetPreferredViewFunc != nil {
		return m.SetPreferredViewFunc(userID, groupID, view)
	}
	return nil
}

func (m *MockStore) GetPreferredView(userID, groupID string) (scoring.SortOption, error) {
	if m.GetPreferredViewFunc != nil {
		return m.GetPreferredViewFunc(userID, groupID)
	}
	return scoring.SortByPoints, nil
}

// Reset clears all recorded calls.
func (m *MockStore) Reset() {
	m.DeleteGroupCalls = nil
	m.LinkGuestCalls = nil
	m.RecordMatchCalls = nil
	m.DeleteMatchCalls = nil
}
