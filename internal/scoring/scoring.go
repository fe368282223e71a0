// Package scoring holds the pure ranking and point computations for group play.
// Everything here is side-effect free and safe to recompute on every request.
package scoring

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MatchPoints returns the points awarded to each member of the winning team:
// the number of defeated opponents. This is the single source of truth for
// points; it is called at write time when persisting a match and again for any
// preview, never reimplemented inline.
func MatchPoints(teamASize, teamBSize int, winning Team) int {
	if winning == TeamA {
		return teamBSize
	}
	return teamASize
}

// CalculateGroupRankings folds a group's matches into per-player standings.
// Every id present in the roster appears exactly once in the result, players
// with no matches included with zero stats. A zero cutoff disables date
// filtering; otherwise only matches with Date >= cutoff count. Player ids not
// present in the roster are ignored, and a duplicated id inside a match counts
// that player only once. The returned slice is freshly allocated; inputs are
// never mutated.
func CalculateGroupRankings(matches []GroupMatch, roster Roster, cutoff time.Time, sortBy SortOption) []Ranking {
	type accum struct {
		points int
		played int
		won    int
	}
	stats := make(map[string]*accum, len(roster))
	for id := range roster {
		stats[id] = &accum{}
	}

	for _, match := range matches {
		if !cutoff.IsZero() && match.Date.Before(cutoff) {
			continue
		}

		seen := make(map[string]bool, len(match.TeamA)+len(match.TeamB))
		tally := func(team []string, won bool) {
			for _, id := range team {
				if seen[id] {
					continue
				}
				seen[id] = true
				acc, ok := stats[id]
				if !ok {
					continue
				}
				acc.played++
				if won {
					acc.won++
					acc.points += match.PointsAwarded
				}
			}
		}
		tally(match.TeamA, match.WinningTeam == TeamA)
		tally(match.TeamB, match.WinningTeam == TeamB)
	}

	rankings := make([]Ranking, 0, len(stats))
	for id, acc := range stats {
		entry := Ranking{
			UserID:        id,
			UserName:      roster[id],
			Points:        acc.points,
			MatchesPlayed: acc.played,
			MatchesWon:    acc.won,
		}
		if acc.played > 0 {
			entry.WinPercentage = int(math.Round(100 * float64(acc.won) / float64(acc.played)))
		}
		rankings = append(rankings, entry)
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		switch sortBy {
		case SortByWinPercentage:
			if a.WinPercentage != b.WinPercentage {
				return a.WinPercentage > b.WinPercentage
			}
			if a.MatchesPlayed != b.MatchesPlayed {
				return a.MatchesPlayed > b.MatchesPlayed
			}
		default:
			if a.Points != b.Points {
				return a.Points > b.Points
			}
			if a.MatchesWon != b.MatchesWon {
				return a.MatchesWon > b.MatchesWon
			}
		}
		return coll.CompareString(a.UserName, b.UserName) < 0
	})
	return rankings
}

// HeadToHead counts the strictly one-versus-one matches between userID and
// friendID, from userID's perspective. Matches with larger teams are skipped
// even when both players took part. A zero cutoff disables date filtering.
func HeadToHead(matches []GroupMatch, userID, friendID string, cutoff time.Time) Stats {
	var s Stats
	for _, match := range matches {
		if len(match.TeamA) != 1 || len(match.TeamB) != 1 {
			continue
		}
		if !cutoff.IsZero() && match.Date.Before(cutoff) {
			continue
		}
		a, b := match.TeamA[0], match.TeamB[0]
		var userTeam Team
		switch {
		case a == userID && b == friendID:
			userTeam = TeamA
		case a == friendID && b == userID:
			userTeam = TeamB
		default:
			continue
		}
		s.Total++
		if match.WinningTeam == userTeam {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	return s
}

// StartOfDay returns midnight of t's day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns midnight of January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
