package scoring

import "time"

// Team tags one of the two sides of a group match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// SortOption selects the primary key used to order rankings.
type SortOption string

const (
	SortByPoints        SortOption = "points"
	SortByWinPercentage SortOption = "winPercentage"
)

// GroupMatch is a recorded match between two teams inside a group.
// Team name slices are snapshots taken at record time; AllPlayerIDs is the
// denormalized flat list of every participant for fast membership filtering.
type GroupMatch struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	TeamA         []string  `json:"team_a"`
	TeamB         []string  `json:"team_b"`
	TeamANames    []string  `json:"team_a_names"`
	TeamBNames    []string  `json:"team_b_names"`
	WinningTeam   Team      `json:"winning_team"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	PointsAwarded int       `json:"points_awarded"`
	AllPlayerIDs  []string  `json:"all_player_ids"`
}

// Roster maps player ids (registered or prefixed guest ids) to display names.
type Roster map[string]string

// Ranking is a derived standing for one roster player. It is never stored.
type Ranking struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	Points        int    `json:"points"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	WinPercentage int    `json:"win_percentage"`
}

// Stats is a head-to-head summary from the primary user's perspective.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Total  int `json:"total"`
}
