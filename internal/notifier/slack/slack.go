package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cuescore/cuescore/internal/metrics"
	"github.com/cuescore/cuescore/internal/notifier"
	"github.com/cuescore/cuescore/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendResultNotification(match *scoring.GroupMatch, groupName string, dryRun bool) error {
	msg := s.formatResultNotification(match, groupName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRankings(groupName string, rankings []scoring.Ranking, dryRun bool) error {
	msg := s.formatRankings(groupName, rankings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendGuestLinked(groupName, guestName, userName string, dryRun bool) error {
	msg := s.formatGuestLinked(groupName, guestName, userName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendGroupDeleted(groupName string, dryRun bool) error {
	msg := s.formatGroupDeleted(groupName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatRankingsResponse formats a standings message for a command response.
func (s *Notifier) FormatRankingsResponse(groupName string, rankings []scoring.Ranking) (any, error) {
	return s.formatRankings(groupName, rankings), nil
}

// formatResultNotification creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatResultNotification(match *scoring.GroupMatch, groupName string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎱 Match result in "+groupName+" 🎱", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	winners, losers := match.TeamANames, match.TeamBNames
	if match.WinningTeam == scoring.TeamB {
		winners, losers = losers, winners
	}
	body := fmt.Sprintf("*%s* beat *%s*\n+%d points each",
		strings.Join(winners, " & "),
		strings.Join(losers, " & "),
		match.PointsAwarded,
	)
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", body, false, false), nil, nil,
	))

	dateText := slack.NewTextBlockObject("mrkdwn", "Played "+match.Date.Format("Mon, Jan 2 2006"), false, false)
	blocks = append(blocks, slack.NewContextBlock("", dateText))

	return slack.NewBlockMessage(blocks...)
}

// formatRankings creates the Slack message for a group's standings.
func (s *Notifier) formatRankings(groupName string, rankings []scoring.Ranking) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 "+groupName+" standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rankings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", "No players yet.", false, false), nil, nil,
		))
		return slack.NewBlockMessage(blocks...)
	}

	var sb strings.Builder
	for i, r := range rankings {
		medal := fmt.Sprintf("%d.", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		sb.WriteString(fmt.Sprintf("%s *%s*: %d pts (%d-%d, %d%%)\n",
			medal, r.UserName, r.Points, r.MatchesWon, r.MatchesPlayed-r.MatchesWon, r.WinPercentage))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", sb.String(), false, false), nil, nil,
	))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatGuestLinked(groupName, guestName, userName string) slack.Message {
	text := fmt.Sprintf("🔗 *%s* joined *%s* and took over the record of guest *%s*.", userName, groupName, guestName)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func (s *Notifier) formatGroupDeleted(groupName string) slack.Message {
	text := fmt.Sprintf("🗑️ The group *%s* was deleted along with its match history.", groupName)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
