package group

import (
	"testing"
	"time"

	"github.com/cuescore/cuescore/internal/database"
	"github.com/cuescore/cuescore/internal/metrics"
	"github.com/cuescore/cuescore/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) GroupStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return New(db, metrics.NewMock())
}

func setupGroup(t *testing.T, s GroupStore) *Group {
	t.Helper()
	g, err := s.CreateGroup("Tuesday League", "alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, s.AddMember(g.ID, "bob", "Bob", "alice"))
	return g
}

func matchDay(d int) time.Time {
	return time.Date(2026, 4, d, 21, 0, 0, 0, time.UTC)
}

func TestCreateGroup(t *testing.T) {
	t.Run("creator becomes first member", func(t *testing.T) {
		s := setupTestStore(t)

		g, err := s.CreateGroup("Tuesday League", "alice", "Alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, g.MemberIDs)

		members, err := s.ListMembers(g.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "alice", members[0].UserID)

		groups, err := s.ListGroupsForUser("alice")
		require.NoError(t, err)
		assert.Len(t, groups, 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		s := setupTestStore(t)

		_, err := s.CreateGroup("  ", "alice", "Alice")
		assert.Error(t, err)
	})
}

func TestAddMember(t *testing.T) {
	s := setupTestStore(t)
	g := setupGroup(t, s)

	t.Run("member appears in roster and id list", func(t *testing.T) {
		got, err := s.GetGroup(g.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, got.MemberIDs)

		roster, err := s.Roster(g.ID)
		require.NoError(t, err)
		assert.Equal(t, scoring.Roster{"alice": "Alice", "bob": "Bob"}, roster)
	})

	t.Run("adding twice is a no-op", func(t *testing.T) {
		require.NoError(t, s.AddMember(g.ID, "bob", "Bob", "alice"))

		got, err := s.GetGroup(g.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, got.MemberIDs)
	})

	t.Run("non-members cannot add members", func(t *testing.T) {
		err := s.AddMember(g.ID, "carol", "Carol R", "mallory")
		assert.ErrorIs(t, err, ErrNotMember)

		got, err := s.GetGroup(g.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, got.MemberIDs)
	})
}

func TestCreateGuest(t *testing.T) {
	s := setupTestStore(t)
	g := setupGroup(t, s)

	t.Run("guest gets a namespaced id and joins the roster", func(t *testing.T) {
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)
		assert.True(t, IsGuestID(guest.ID))

		roster, err := s.Roster(g.ID)
		require.NoError(t, err)
		assert.Equal(t, "Carol", roster[guest.ID])
	})

	t.Run("name uniqueness is case-insensitive", func(t *testing.T) {
		_, err := s.CreateGuest(g.ID, "carol", "alice")
		assert.ErrorIs(t, err, ErrGuestNameTaken)
	})

	t.Run("non-members cannot create guests", func(t *testing.T) {
		_, err := s.CreateGuest(g.ID, "Intruder Guest", "mallory")
		assert.ErrorIs(t, err, ErrNotMember)

		roster, err := s.Roster(g.ID)
		require.NoError(t, err)
		for _, name := range roster {
			assert.NotEqual(t, "Intruder Guest", name)
		}
	})

	t.Run("same name allowed in another group", func(t *testing.T) {
		other, err := s.CreateGroup("Other", "alice", "Alice")
		require.NoError(t, err)
		_, err = s.CreateGuest(other.ID, "Carol", "alice")
		assert.NoError(t, err)
	})
}

func TestRecordMatch(t *testing.T) {
	s := setupTestStore(t)
	g := setupGroup(t, s)
	guest, err := s.CreateGuest(g.ID, "Carol", "alice")
	require.NoError(t, err)

	t.Run("derives points from losing team size", func(t *testing.T) {
		m := &scoring.GroupMatch{
			GroupID:     g.ID,
			TeamA:       []string{"alice"},
			TeamANames:  []string{"Alice"},
			TeamB:       []string{"bob", guest.ID},
			TeamBNames:  []string{"Bob", "Carol"},
			WinningTeam: scoring.TeamA,
			Date:        matchDay(1),
			CreatedBy:   "alice",
		}
		require.NoError(t, s.RecordMatch(m))
		assert.Equal(t, 2, m.PointsAwarded)
		assert.Equal(t, []string{"alice", "bob", guest.ID}, m.AllPlayerIDs)

		matches, err := s.ListMatches(g.ID)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, m.ID, matches[0].ID)
		assert.Equal(t, 2, matches[0].PointsAwarded)
	})

	t.Run("dedupes repeated ids within a team", func(t *testing.T) {
		m := &scoring.GroupMatch{
			GroupID:     g.ID,
			TeamA:       []string{"alice", "alice"},
			TeamANames:  []string{"Alice", "Alice"},
			TeamB:       []string{"bob"},
			TeamBNames:  []string{"Bob"},
			WinningTeam: scoring.TeamB,
			Date:        matchDay(2),
			CreatedBy:   "bob",
		}
		require.NoError(t, s.RecordMatch(m))
		assert.Equal(t, []string{"alice"}, m.TeamA)
		assert.Equal(t, 1, m.PointsAwarded)
	})

	t.Run("rejects overlapping teams", func(t *testing.T) {
		err := s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"alice"}, TeamANames: []string{"Alice"},
			TeamB: []string{"alice"}, TeamBNames: []string{"Alice"},
			WinningTeam: scoring.TeamA, Date: matchDay(3), CreatedBy: "alice",
		})
		assert.Error(t, err)
	})

	t.Run("rejects players outside the roster", func(t *testing.T) {
		err := s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"alice"}, TeamANames: []string{"Alice"},
			TeamB: []string{"mallory"}, TeamBNames: []string{"Mallory"},
			WinningTeam: scoring.TeamA, Date: matchDay(3), CreatedBy: "alice",
		})
		assert.Error(t, err)
	})

	t.Run("rejects creator outside the roster", func(t *testing.T) {
		err := s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"alice"}, TeamANames: []string{"Alice"},
			TeamB: []string{"bob"}, TeamBNames: []string{"Bob"},
			WinningTeam: scoring.TeamA, Date: matchDay(3), CreatedBy: "mallory",
		})
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestDeleteMatch(t *testing.T) {
	s := setupTestStore(t)
	g := setupGroup(t, s)

	m := &scoring.GroupMatch{
		GroupID: g.ID,
		TeamA:   []string{"alice"}, TeamANames: []string{"Alice"},
		TeamB: []string{"bob"}, TeamBNames: []string{"Bob"},
		WinningTeam: scoring.TeamA, Date: matchDay(1), CreatedBy: "alice",
	}
	require.NoError(t, s.RecordMatch(m))

	t.Run("only creator can delete", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteMatch(m.ID, "bob"), ErrNotMatchCreator)
	})

	t.Run("creator deletes", func(t *testing.T) {
		require.NoError(t, s.DeleteMatch(m.ID, "alice"))
		matches, err := s.ListMatches(g.ID)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteMatch("nope", "alice"), ErrMatchNotFound)
	})
}

func TestDeleteGroup(t *testing.T) {
	t.Run("owner removes group and all dependents", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)
		require.NoError(t, s.SetPreferredView("alice", g.ID, scoring.SortByWinPercentage))
		require.NoError(t, s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"alice"}, TeamANames: []string{"Alice"},
			TeamB: []string{guest.ID}, TeamBNames: []string{"Carol"},
			WinningTeam: scoring.TeamA, Date: matchDay(1), CreatedBy: "alice",
		}))

		require.NoError(t, s.DeleteGroup(g.ID, "alice"))

		_, err = s.GetGroup(g.ID)
		assert.ErrorIs(t, err, ErrGroupNotFound)

		groups, err := s.ListGroupsForUser("alice")
		require.NoError(t, err)
		assert.Empty(t, groups)

		matches, err := s.ListMatches(g.ID)
		require.NoError(t, err)
		assert.Empty(t, matches)

		guests, err := s.ListGuests(g.ID)
		require.NoError(t, err)
		assert.Empty(t, guests)
	})

	t.Run("non-owner is rejected even as member", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)

		assert.ErrorIs(t, s.DeleteGroup(g.ID, "bob"), ErrNotGroupOwner)

		got, err := s.GetGroup(g.ID)
		require.NoError(t, err)
		assert.Equal(t, g.ID, got.ID)
	})

	t.Run("cleanup spans multiple batches", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		for i := 0; i < batchLimit+20; i++ {
			require.NoError(t, s.RecordMatch(&scoring.GroupMatch{
				GroupID: g.ID,
				TeamA:   []string{"alice"}, TeamANames: []string{"Alice"},
				TeamB: []string{"bob"}, TeamBNames: []string{"Bob"},
				WinningTeam: scoring.TeamA, Date: matchDay(1), CreatedBy: "alice",
			}))
		}

		require.NoError(t, s.DeleteGroup(g.ID, "alice"))

		matches, err := s.ListMatches(g.ID)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestLinkGuest(t *testing.T) {
	t.Run("rewrites guest matches and promotes the user", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)

		require.NoError(t, s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"alice", guest.ID}, TeamANames: []string{"Alice", "Carol"},
			TeamB: []string{"bob"}, TeamBNames: []string{"Bob"},
			WinningTeam: scoring.TeamA, Date: matchDay(1), CreatedBy: "alice",
		}))
		require.NoError(t, s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"bob"}, TeamANames: []string{"Bob"},
			TeamB: []string{guest.ID}, TeamBNames: []string{"Carol"},
			WinningTeam: scoring.TeamB, Date: matchDay(2), CreatedBy: "alice",
		}))

		require.NoError(t, s.LinkGuest(g.ID, guest.ID, "carol", "Carol R", "alice"))

		matches, err := s.ListMatches(g.ID)
		require.NoError(t, err)
		for _, m := range matches {
			assert.NotContains(t, m.AllPlayerIDs, guest.ID)
		}
		assert.Equal(t, []string{"carol"}, matches[0].TeamB)
		assert.Equal(t, []string{"Carol R"}, matches[0].TeamBNames)

		roster, err := s.Roster(g.ID)
		require.NoError(t, err)
		assert.Equal(t, "Carol R", roster["carol"])
		_, guestStillListed := roster[guest.ID]
		assert.False(t, guestStillListed)

		got, err := s.GetGroup(g.ID)
		require.NoError(t, err)
		assert.Contains(t, got.MemberIDs, "carol")
	})

	t.Run("dedupes when the user already played the match", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		require.NoError(t, s.AddMember(g.ID, "carol", "Carol R", "alice"))
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)

		require.NoError(t, s.RecordMatch(&scoring.GroupMatch{
			GroupID: g.ID,
			TeamA:   []string{"carol", guest.ID}, TeamANames: []string{"Carol R", "Carol"},
			TeamB: []string{"bob"}, TeamBNames: []string{"Bob"},
			WinningTeam: scoring.TeamA, Date: matchDay(1), CreatedBy: "carol",
		}))

		require.NoError(t, s.LinkGuest(g.ID, guest.ID, "carol", "Carol R", "alice"))

		matches, err := s.ListMatches(g.ID)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, []string{"carol"}, matches[0].TeamA)
		assert.Equal(t, []string{"carol", "bob"}, matches[0].AllPlayerIDs)
	})

	t.Run("caller must be a member", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)

		err = s.LinkGuest(g.ID, guest.ID, "carol", "Carol R", "mallory")
		assert.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("linking twice reports the guest gone", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)

		require.NoError(t, s.LinkGuest(g.ID, guest.ID, "carol", "Carol R", "alice"))
		err = s.LinkGuest(g.ID, guest.ID, "carol", "Carol R", "alice")
		assert.ErrorIs(t, err, ErrGuestNotFound)
	})

	t.Run("freed guest name can be reused", func(t *testing.T) {
		s := setupTestStore(t)
		g := setupGroup(t, s)
		guest, err := s.CreateGuest(g.ID, "Carol", "alice")
		require.NoError(t, err)

		require.NoError(t, s.LinkGuest(g.ID, guest.ID, "carol", "Carol R", "alice"))

		_, err = s.CreateGuest(g.ID, "Carol", "alice")
		assert.NoError(t, err)
	})
}

func TestPreferredView(t *testing.T) {
	s := setupTestStore(t)
	g := setupGroup(t, s)

	t.Run("defaults to points", func(t *testing.T) {
		view, err := s.GetPreferredView("alice", g.ID)
		require.NoError(t, err)
		assert.Equal(t, scoring.SortByPoints, view)
	})

	t.Run("set and overwrite", func(t *testing.T) {
		require.NoError(t, s.SetPreferredView("alice", g.ID, scoring.SortByWinPercentage))
		view, err := s.GetPreferredView("alice", g.ID)
		require.NoError(t, err)
		assert.Equal(t, scoring.SortByWinPercentage, view)

		require.NoError(t, s.SetPreferredView("alice", g.ID, scoring.SortByPoints))
		view, err = s.GetPreferredView("alice", g.ID)
		require.NoError(t, err)
		assert.Equal(t, scoring.SortByPoints, view)
	})

	t.Run("rejects unknown view", func(t *testing.T) {
		err := s.SetPreferredView("alice", g.ID, scoring.SortOption("elo"))
		assert.Error(t, err)
	})

	t.Run("scoped per user and group", func(t *testing.T) {
		view, err := s.GetPreferredView("bob", g.ID)
		require.NoError(t, err)
		assert.Equal(t, scoring.SortByPoints, view)
	})
}

func TestGuestIDHelpers(t *testing.T) {
	id := NewGuestID()
	assert.True(t, IsGuestID(id))
	assert.False(t, IsGuestID("alice"))
	assert.Equal(t, id[len(GuestIDPrefix):], TrimGuestID(id))
	assert.Equal(t, "alice", TrimGuestID("alice"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `unregistered\_abc`, escapeLike("unregistered_abc"))
	assert.Equal(t, `100\%\\x`, escapeLike(`100%\x`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
