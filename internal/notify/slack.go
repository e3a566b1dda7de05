// Package notify sends Slack notifications for CMDB events when the
// notification settings are enabled. Failures are logged and surfaced
// to the caller for audit-flagging; there is no retry.
package notify

import (
	"fmt"

	"github.com/atlascmdb/atlas/internal/database"
	"github.com/slack-go/slack"
)

// slackAPI is the subset of the Slack client used by the notifier.
// Narrowed to an interface so tests can substitute a fake.
type slackAPI interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts messages to the configured Slack channel.
type SlackNotifier struct {
	newClient func(token string) slackAPI
}

// NewSlackNotifier creates a notifier backed by the real Slack API.
func NewSlackNotifier() *SlackNotifier {
	return &SlackNotifier{
		newClient: func(token string) slackAPI {
			return slack.New(token)
		},
	}
}

// severityEmoji maps incident severity to a Slack emoji.
func severityEmoji(severity database.IncidentSeverity) string {
	switch severity {
	case database.IncidentSeverityCritical:
		return ":red_circle:"
	case database.IncidentSeverityHigh:
		return ":large_orange_circle:"
	case database.IncidentSeverityMedium:
		return ":large_yellow_circle:"
	case database.IncidentSeverityLow:
		return ":large_blue_circle:"
	default:
		return ":white_circle:"
	}
}

// IncidentCreated notifies the configured channel about a new
// incident. It is a no-op when notifications are disabled or
// unconfigured.
func (n *SlackNotifier) IncidentCreated(settings *database.NotificationSettings, incident *database.Incident, itemName string) error {
	if settings == nil || !settings.IsActive() {
		return nil
	}

	text := fmt.Sprintf("%s New incident: *%s*\nItem: %s\nSeverity: %s",
		severityEmoji(incident.Severity), incident.Title, itemName, incident.Severity)

	client := n.newClient(settings.BotToken)
	_, _, err := client.PostMessage(settings.Channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post Slack notification: %w", err)
	}
	return nil
}
