package group

import "github.com/cuescore/cuescore/internal/scoring"

// GroupStore defines the interface for groups, rosters, guests and group
// matches.
type GroupStore interface {
	CreateGroup(name, creatorID, creatorName string) (*Group, error)
	GetGroup(groupID string) (*Group, error)
	ListGroupsForUser(userID string) ([]Group, error)
	DeleteGroup(groupID, callerID string) error

	AddMember(groupID, userID, userName, callerID string) error
	ListMembers(groupID string) ([]Member, error)
	Roster(groupID string) (scoring.Roster, error)

	CreateGuest(groupID, name, createdBy string) (*Guest, error)
	ListGuests(groupID string) ([]Guest, error)
	LinkGuest(groupID, guestID, userID, userName, callerID string) error

	RecordMatch(match *scoring.GroupMatch) error
	DeleteMatch(matchID, callerID string) error
	ListMatches(groupID string) ([]scoring.GroupMatch, error)

	SetPreferredView(userID, groupID string, view scoring.SortOption) error
	GetPreferredView(userID, groupID string) (scoring.SortOption, error)
}
