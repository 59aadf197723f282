// Package report delivers the pipeline's backup summary, read from standard
// input, to email (Mandrill) or Slack.
package report

import "errors"

var (
	// ErrMissingAPIKey indicates MANDRILL_APIKEY is not available.
	ErrMissingAPIKey = errors.New("missing Mandrill API key")

	// ErrNilSettings indicates that nil settings were provided.
	ErrNilSettings = errors.New("settings cannot be nil")

	// ErrNoRecipients is returned when the settings define no notify addresses.
	ErrNoRecipients = errors.New("no notify recipients configured")

	// ErrMissingSender is returned when the settings define no notify_from address.
	ErrMissingSender = errors.New("no notify sender configured")

	// ErrMissingWebhook indicates no Slack webhook URL is configured.
	ErrMissingWebhook = errors.New("missing Slack webhook URL")

	// ErrSendFailed indicates the delivery service rejected the request.
	ErrSendFailed = errors.New("report delivery failed")
)
