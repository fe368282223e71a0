package identity

import "sync"

// MockStore is a mock implementation of the UserStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterUserFunc      func(user UserInfo) error
	GetUserFunc           func(userID string) (*UserInfo, error)
	GetUsersFunc          func(userIDs []string) ([]UserInfo, error)
	UsernameAvailableFunc func(displayName string) (bool, error)
	SearchUsersFunc       func(prefix string, excludeUserID string) ([]UserInfo, error)

	// Call records
	RegisterUserCalls []UserInfo
	GetUserCalls      []string
	SearchUsersCalls  []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterUserCalls = nil
	m.GetUserCalls = nil
	m.SearchUsersCalls = nil
}

func (m *MockStore) RegisterUser(user UserInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterUserCalls = append(m.RegisterUserCalls, user)
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(user)
	}
	return nil
}

func (m *MockStore) GetUser(userID string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetUserCalls = append(m.GetUserCalls, userID)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(userID)
	}
	return &UserInfo{ID: userID}, nil
}

func (m *MockStore) GetUsers(userIDs []string) ([]UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUsersFunc != nil {
		return m.GetUsersFunc(userIDs)
	}
	return []UserInfo{}, nil
}

func (m *MockStore) UsernameAvailable(displayName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UsernameAvailableFunc != nil {
		return m.UsernameAvailableFunc(displayName)
	}
	return true, nil
}

func (m *MockStore) SearchUsers(prefix string, excludeUserID string) ([]UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchUsersCalls = append(m.SearchUsersCalls, prefix)
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(prefix, excludeUserID)
	}
	return []UserInfo{}, nil
}
