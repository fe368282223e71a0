package scoring_test

import (
	"testing"
	"time"

	"github.com/cuescore/cuescore/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPoints(t *testing.T) {
	for m := 1; m <= 6; m++ {
		for n := 1; n <= 6; n++ {
			assert.Equal(t, n, scoring.MatchPoints(m, n, scoring.TeamA))
			assert.Equal(t, m, scoring.MatchPoints(m, n, scoring.TeamB))
		}
	}
}

func TestCalculateGroupRankings_BasicWin(t *testing.T) {
	roster := scoring.Roster{"p1": "Alice", "p2": "Bob"}
	matches := []scoring.GroupMatch{
		{
			TeamA:         []string{"p1"},
			TeamB:         []string{"p2"},
			WinningTeam:   scoring.TeamA,
			PointsAwarded: 1,
			Date:          time.Now(),
		},
	}

	rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	require.Len(t, rankings, 2)

	assert.Equal(t, "Alice", rankings[0].UserName)
	assert.Equal(t, 1, rankings[0].Points)
	assert.Equal(t, 1, rankings[0].MatchesPlayed)
	assert.Equal(t, 1, rankings[0].MatchesWon)
	assert.Equal(t, 100, rankings[0].WinPercentage)

	assert.Equal(t, "Bob", rankings[1].UserName)
	assert.Equal(t, 0, rankings[1].Points)
	assert.Equal(t, 1, rankings[1].MatchesPlayed)
	assert.Equal(t, 0, rankings[1].MatchesWon)
	assert.Equal(t, 0, rankings[1].WinPercentage)
}

func TestCalculateGroupRankings_UnevenTeams(t *testing.T) {
	// Team A has 4 players, team B has 2, B wins: each winner earns 4 points.
	points := scoring.MatchPoints(4, 2, scoring.TeamB)
	require.Equal(t, 4, points)

	roster := scoring.Roster{
		"a1": "A1", "a2": "A2", "a3": "A3", "a4": "A4",
		"b1": "B1", "b2": "B2",
	}
	matches := []scoring.GroupMatch{
		{
			TeamA:         []string{"a1", "a2", "a3", "a4"},
			TeamB:         []string{"b1", "b2"},
			WinningTeam:   scoring.TeamB,
			PointsAwarded: points,
			Date:          time.Now(),
		},
	}

	rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	require.Len(t, rankings, 6)
	for _, r := range rankings {
		switch r.UserID {
		case "b1", "b2":
			assert.Equal(t, 4, r.Points, "winner %s", r.UserID)
			assert.Equal(t, 1, r.MatchesWon)
		default:
			assert.Equal(t, 0, r.Points, "loser %s", r.UserID)
			assert.Equal(t, 0, r.MatchesWon)
		}
		assert.Equal(t, 1, r.MatchesPlayed)
	}
}

func TestCalculateGroupRankings_Completeness(t *testing.T) {
	roster := scoring.Roster{"p1": "Alice", "p2": "Bob", "p3": "Carol"}
	matches := []scoring.GroupMatch{
		{TeamA: []string{"p1"}, TeamB: []string{"p2"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: time.Now()},
	}

	rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	require.Len(t, rankings, 3)

	seen := make(map[string]int)
	for _, r := range rankings {
		seen[r.UserID]++
	}
	for id := range roster {
		assert.Equal(t, 1, seen[id], "roster id %s should appear exactly once", id)
	}

	// Carol never played but is still listed, with all-zero stats.
	var carol scoring.Ranking
	for _, r := range rankings {
		if r.UserID == "p3" {
			carol = r
		}
	}
	assert.Equal(t, scoring.Ranking{UserID: "p3", UserName: "Carol"}, carol)
}

func TestCalculateGroupRankings_EmptyRoster(t *testing.T) {
	matches := []scoring.GroupMatch{
		{TeamA: []string{"p1"}, TeamB: []string{"p2"}, WinningTeam: scoring.TeamA, PointsAwarded: 1},
	}
	rankings := scoring.CalculateGroupRankings(matches, scoring.Roster{}, time.Time{}, scoring.SortByPoints)
	assert.Empty(t, rankings)
}

func TestCalculateGroupRankings_DedupesRepeatedID(t *testing.T) {
	roster := scoring.Roster{"p1": "Alice", "p2": "Bob"}
	matches := []scoring.GroupMatch{
		{
			// p1 appears twice in team A by data error.
			TeamA:         []string{"p1", "p1"},
			TeamB:         []string{"p2"},
			WinningTeam:   scoring.TeamA,
			PointsAwarded: 1,
			Date:          time.Now(),
		},
	}

	rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	require.Len(t, rankings, 2)
	assert.Equal(t, 1, rankings[0].MatchesPlayed)
	assert.Equal(t, 1, rankings[0].MatchesWon)
	assert.Equal(t, 1, rankings[0].Points)
}

func TestCalculateGroupRankings_IgnoresUnknownIDs(t *testing.T) {
	roster := scoring.Roster{"p1": "Alice"}
	matches := []scoring.GroupMatch{
		{
			TeamA:         []string{"p1", "ghost"},
			TeamB:         []string{"other-ghost"},
			WinningTeam:   scoring.TeamA,
			PointsAwarded: 1,
			Date:          time.Now(),
		},
	}

	rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	require.Len(t, rankings, 1)
	assert.Equal(t, "p1", rankings[0].UserID)
	assert.Equal(t, 1, rankings[0].Points)
}

func TestCalculateGroupRankings_Cutoff(t *testing.T) {
	roster := scoring.Roster{"p1": "Alice", "p2": "Bob"}
	old := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	matches := []scoring.GroupMatch{
		{TeamA: []string{"p1"}, TeamB: []string{"p2"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: old},
		{TeamA: []string{"p1"}, TeamB: []string{"p2"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: recent},
	}

	countPlayed := func(cutoff time.Time) int {
		rankings := scoring.CalculateGroupRankings(matches, roster, cutoff, scoring.SortByPoints)
		return rankings[0].MatchesPlayed
	}

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, countPlayed(t1))
	assert.Equal(t, 1, countPlayed(t2))
	assert.LessOrEqual(t, countPlayed(t2), countPlayed(t1), "later cutoff must never include more matches")

	// A match dated exactly at the cutoff is included.
	assert.Equal(t, 1, countPlayed(recent))
}

func TestCalculateGroupRankings_Determinism(t *testing.T) {
	roster := scoring.Roster{"p1": "Alice", "p2": "Bob", "p3": "Carol", "p4": "Dave"}
	matches := []scoring.GroupMatch{
		{TeamA: []string{"p1", "p2"}, TeamB: []string{"p3", "p4"}, WinningTeam: scoring.TeamA, PointsAwarded: 2, Date: time.Now()},
		{TeamA: []string{"p3"}, TeamB: []string{"p2"}, WinningTeam: scoring.TeamB, PointsAwarded: 1, Date: time.Now()},
	}

	first := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	second := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
	assert.Equal(t, first, second)
}

func TestCalculateGroupRankings_TieBreaks(t *testing.T) {
	t.Run("points mode breaks ties on matches won, then name", func(t *testing.T) {
		roster := scoring.Roster{"p1": "Zoe", "p2": "Anna", "p3": "Mia"}
		// Zoe: 2 points from one 2-point win. Anna: 2 points from two 1-point
		// wins. Mia: identical record to Zoe, tie broken by name.
		matches := []scoring.GroupMatch{
			{TeamA: []string{"p1"}, TeamB: []string{"x1", "x2"}, WinningTeam: scoring.TeamA, PointsAwarded: 2, Date: time.Now()},
			{TeamA: []string{"p3"}, TeamB: []string{"x1", "x2"}, WinningTeam: scoring.TeamA, PointsAwarded: 2, Date: time.Now()},
			{TeamA: []string{"p2"}, TeamB: []string{"x1"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: time.Now()},
			{TeamA: []string{"p2"}, TeamB: []string{"x2"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: time.Now()},
		}

		rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByPoints)
		require.Len(t, rankings, 3)
		assert.Equal(t, "Anna", rankings[0].UserName, "more matches won ranks first on equal points")
		assert.Equal(t, "Mia", rankings[1].UserName, "equal record falls back to name order")
		assert.Equal(t, "Zoe", rankings[2].UserName)
	})

	t.Run("win percentage mode breaks ties on matches played", func(t *testing.T) {
		roster := scoring.Roster{"p1": "Alice", "p2": "Bob"}
		// Both at 100%, Alice has played more matches.
		matches := []scoring.GroupMatch{
			{TeamA: []string{"p1"}, TeamB: []string{"x1"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: time.Now()},
			{TeamA: []string{"p1"}, TeamB: []string{"x2"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: time.Now()},
			{TeamA: []string{"p2"}, TeamB: []string{"x1"}, WinningTeam: scoring.TeamA, PointsAwarded: 1, Date: time.Now()},
		}

		rankings := scoring.CalculateGroupRankings(matches, roster, time.Time{}, scoring.SortByWinPercentage)
		require.Len(t, rankings, 2)
		assert.Equal(t, "Alice", rankings[0].UserName)
		assert.Equal(t, "Bob", rankings[1].UserName)
	})
}

func TestHeadToHead(t *testing.T) {
	cutoffless := time.Time{}

	matches := []scoring.GroupMatch{
		// 1v1 win for u1.
		{TeamA: []string{"u1"}, TeamB: []string{"u2"}, WinningTeam: scoring.TeamA, Date: time.Now()},
		// 1v1 loss for u1, sides swapped.
		{TeamA: []string{"u2"}, TeamB: []string{"u1"}, WinningTeam: scoring.TeamA, Date: time.Now()},
		// Doubles match with both players: not head-to-head.
		{TeamA: []string{"u1", "u3"}, TeamB: []string{"u2", "u4"}, WinningTeam: scoring.TeamA, Date: time.Now()},
		// 1v1 against someone else.
		{TeamA: []string{"u1"}, TeamB: []string{"u3"}, WinningTeam: scoring.TeamA, Date: time.Now()},
	}

	stats := scoring.HeadToHead(matches, "u1", "u2", cutoffless)
	assert.Equal(t, scoring.Stats{Wins: 1, Losses: 1, Total: 2}, stats)

	t.Run("cutoff filters old matches", func(t *testing.T) {
		old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		dated := []scoring.GroupMatch{
			{TeamA: []string{"u1"}, TeamB: []string{"u2"}, WinningTeam: scoring.TeamA, Date: old},
			{TeamA: []string{"u1"}, TeamB: []string{"u2"}, WinningTeam: scoring.TeamB, Date: time.Now()},
		}
		stats := scoring.HeadToHead(dated, "u1", "u2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, scoring.Stats{Wins: 0, Losses: 1, Total: 1}, stats)
	})
}

func TestPeriodHelpers(t *testing.T) {
	// Wednesday 2024-06-12 15:30 UTC.
	ref := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), scoring.StartOfDay(ref))
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), scoring.StartOfWeek(ref), "week starts Monday")
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), scoring.StartOfMonth(ref))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), scoring.StartOfYear(ref))

	t.Run("sunday belongs to the week started the previous monday", func(t *testing.T) {
		sunday := time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), scoring.StartOfWeek(sunday))
	})
}
