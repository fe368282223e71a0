package friend

// FriendStore defines the interface for friendships, friend requests and
// 1v1 matches.
type FriendStore interface {
	SendRequest(fromID, fromName, toID, toName string) (*Request, error)
	AcceptRequest(requestID, callerID string) error
	RejectRequest(requestID, callerID string) error
	ListPendingRequests(toUserID string) ([]Request, error)
	ListSentRequests(fromUserID string) ([]Request, error)

	ListFriends(userID string) ([]Friend, error)
	AreFriends(userID, friendID string) (bool, error)

	RecordMatch(match *Match) error
	DeleteMatch(matchID, callerID string) error
	GetMatchesWithFriend(userID, friendID string) ([]Match, error)
}
