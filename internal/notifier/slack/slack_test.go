package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuescore/cuescore/internal/metrics"
	"github.com/cuescore/cuescore/internal/scoring"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testMatch() *scoring.GroupMatch {
	return &scoring.GroupMatch{
		ID:            "m1",
		GroupID:       "g1",
		TeamA:         []string{"alice"},
		TeamANames:    []string{"Alice"},
		TeamB:         []string{"bob", "carol"},
		TeamBNames:    []string{"Bob", "Carol"},
		WinningTeam:   scoring.TeamA,
		PointsAwarded: 2,
		Date:          time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC),
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", m)

	err := n.SendResultNotification(testMatch(), "Tuesday League", true)
	require.NoError(t, err)
	assert.Equal(t, 0, m.NotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendResultNotification(testMatch(), "Tuesday League", false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, m.NotifSent())
	assert.Equal(t, 0, m.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendRankings("Tuesday League", nil, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, m.NotifSent())
	assert.Equal(t, 1, m.NotifFailed())
}

func TestFormatResultNotification(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("winning team listed first", func(t *testing.T) {
		msg := n.formatResultNotification(testMatch(), "Tuesday League")
		require.NotEmpty(t, msg.Blocks.BlockSet)

		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "*Alice* beat *Bob & Carol*")
		assert.Contains(t, section.Text.Text, "+2 points")
	})

	t.Run("team B win swaps the order", func(t *testing.T) {
		match := testMatch()
		match.WinningTeam = scoring.TeamB
		msg := n.formatResultNotification(match, "Tuesday League")

		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "*Bob & Carol* beat *Alice*")
	})
}

func TestFormatRankings(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("medals for the top three", func(t *testing.T) {
		rankings := []scoring.Ranking{
			{UserName: "Alice", Points: 9, MatchesPlayed: 5, MatchesWon: 4, WinPercentage: 80},
			{UserName: "Bob", Points: 5, MatchesPlayed: 5, MatchesWon: 2, WinPercentage: 40},
		}
		resp, err := n.FormatRankingsResponse("Tuesday League", rankings)
		require.NoError(t, err)

		msg, ok := resp.(slackapi.Message)
		require.True(t, ok)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "🥇 *Alice*: 9 pts (4-1, 80%)")
		assert.Contains(t, section.Text.Text, "🥈 *Bob*: 5 pts (2-3, 40%)")
	})

	t.Run("empty standings", func(t *testing.T) {
		msg := n.formatRankings("Tuesday League", nil)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "No players yet")
	})
}
