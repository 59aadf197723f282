package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Slack message defaults.
const (
	DefaultSlackChannel  = "#general"
	DefaultSlackUsername = "backup-bot"
	DefaultSlackEmoji    = ":mega:"
)

// slackMessage is the incoming-webhook payload.
type slackMessage struct {
	Text      string `json:"text"`
	Channel   string `json:"channel"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
}

// Slacker posts report content to a Slack incoming webhook.
type Slacker struct {
	webhookURL string
	client     *http.Client
}

// NewSlacker creates a Slacker for the given webhook URL.
func NewSlacker(webhookURL string) (*Slacker, error) {
	const op = "report.NewSlacker"

	if webhookURL == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingWebhook)
	}

	return &Slacker{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}, nil
}

// Send posts the content to the webhook.
func (s *Slacker) Send(ctx context.Context, content string) error {
	const op = "report.Slacker.Send"

	body, err := json.Marshal(slackMessage{
		Text:      content,
		Channel:   DefaultSlackChannel,
		Username:  DefaultSlackUsername,
		IconEmoji: DefaultSlackEmoji,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to encode message: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %w: %s: %s", op, ErrSendFailed, resp.Status, respBody)
	}

	return nil
}
