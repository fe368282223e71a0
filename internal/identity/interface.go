package identity

// UserStore defines the interface for interacting with user profiles.
type UserStore interface {
	RegisterUser(user UserInfo) error
	GetUser(userID string) (*UserInfo, error)
	GetUsers(userIDs []string) ([]UserInfo, error)
	UsernameAvailable(displayName string) (bool, error)
	SearchUsers(prefix string, excludeUserID string) ([]UserInfo, error)
}
