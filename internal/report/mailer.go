package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"backup-pipeline/internal/settings"
)

// MandrillSendURL is the Mandrill transactional-send endpoint.
const MandrillSendURL = "https://mandrillapp.com/api/1.0/messages/send.json"

// recipient is a Mandrill message recipient.
type recipient struct {
	Email string `json:"email"`
}

// message mirrors the Mandrill message payload. Tracking and content-link
// options are always off for backup reports.
type message struct {
	Subject         string      `json:"subject"`
	Text            string      `json:"text"`
	FromEmail       string      `json:"from_email"`
	To              []recipient `json:"to"`
	TrackOpens      bool        `json:"track_opens"`
	TrackClicks     bool        `json:"track_clicks"`
	AutoHTML        bool        `json:"auto_html"`
	ViewContentLink bool        `json:"view_content_link"`
}

// sendRequest is the full request body of messages/send.json.
type sendRequest struct {
	Key     string  `json:"key"`
	Message message `json:"message"`
}

// SendResult is Mandrill's per-recipient delivery outcome.
type SendResult struct {
	Email        string `json:"email"`
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason"`
}

// Mailer emails report content through Mandrill using the recipients and
// sender from the suite settings.
type Mailer struct {
	apiKey   string
	settings *settings.Settings
	endpoint string
	client   *http.Client
}

// NewMailer creates a Mailer. The API key comes from the environment the
// launcher injected; recipients and sender must be present in the settings.
func NewMailer(apiKey string, s *settings.Settings) (*Mailer, error) {
	const op = "report.NewMailer"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingAPIKey)
	}
	if s == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilSettings)
	}
	if len(s.Notify) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}
	if s.NotifyFrom == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingSender)
	}

	return &Mailer{
		apiKey:   apiKey,
		settings: s,
		endpoint: MandrillSendURL,
		client:   http.DefaultClient,
	}, nil
}

// buildMessage assembles the Mandrill payload for the given report content.
// The subject falls back to the program's command line when the settings do
// not define one.
func (m *Mailer) buildMessage(content string) message {
	subject := m.settings.NotifySubject
	if subject == "" {
		subject = strings.Join(os.Args, " ")
	}

	to := make([]recipient, 0, len(m.settings.Notify))
	for _, addr := range m.settings.Notify {
		to = append(to, recipient{Email: addr})
	}

	return message{
		Subject:   subject,
		Text:      content,
		FromEmail: m.settings.NotifyFrom,
		To:        to,
	}
}

// Send emails the content and returns Mandrill's per-recipient results.
func (m *Mailer) Send(ctx context.Context, content string) ([]SendResult, error) {
	const op = "report.Mailer.Send"

	body, err := json.Marshal(sendRequest{Key: m.apiKey, Message: m.buildMessage(content)})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: %w: %s: %s", op, ErrSendFailed, resp.Status, respBody)
	}

	var results []SendResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	return results, nil
}
