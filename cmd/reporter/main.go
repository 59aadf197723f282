// Package main provides the reporter: it reads the backuper's summary from
// standard input and delivers it by email (Mandrill) or Slack webhook. Its
// exit code is the visible result of the whole pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"backup-pipeline/internal/config"
	"backup-pipeline/internal/report"
	"backup-pipeline/internal/s3"
	"backup-pipeline/internal/settings"
)

const (
	envStorageEndpoint = "PYRAX_ENDPOINT"
	envStorageRegion   = "PYRAX_REGION"
	envSlackWebhook    = "SLACK_WEBHOOK"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func main() {
	var via string
	flag.StringVar(&via, "via", "email", "delivery channel: email or slack")
	flag.Parse()

	ctx := context.Background()

	content, err := report.ReadInput(os.Stdin)
	if err != nil {
		slog.Error("failed to read report input", "error", err)
		os.Exit(1)
	}

	suite, err := loadSettings(ctx)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	switch via {
	case "email":
		if err := sendEmail(ctx, suite, content); err != nil {
			slog.Error("failed to send report email", "error", err)
			os.Exit(1)
		}
	case "slack":
		if err := sendSlack(ctx, suite, content); err != nil {
			slog.Error("failed to send Slack report", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("unknown delivery channel", "via", via)
		os.Exit(2)
	}
}

// loadSettings connects to the backups bucket with the injected credentials
// and fetches the suite settings object.
func loadSettings(ctx context.Context) (*settings.Settings, error) {
	username, err := settings.Env(config.EnvPyraxUsername)
	if err != nil {
		return nil, err
	}
	apiKey, err := settings.Env(config.EnvPyraxAPIKey)
	if err != nil {
		return nil, err
	}

	client, err := s3.NewClient(ctx, username, apiKey, s3.Options{
		Region:   os.Getenv(envStorageRegion),
		Endpoint: os.Getenv(envStorageEndpoint),
	})
	if err != nil {
		return nil, err
	}

	store, err := s3.NewStore(client, settings.Container)
	if err != nil {
		return nil, err
	}

	return settings.Load(ctx, store)
}

// sendEmail delivers the report through Mandrill and prints the per-recipient
// delivery status.
func sendEmail(ctx context.Context, suite *settings.Settings, content string) error {
	apiKey, err := settings.Env(config.EnvMandrillAPIKey)
	if err != nil {
		return err
	}

	mailer, err := report.NewMailer(apiKey, suite)
	if err != nil {
		return err
	}

	results, err := mailer.Send(ctx, content)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%s: %s\n", r.Email, r.Status)
	}

	return nil
}

// sendSlack delivers the report to the webhook from the environment, falling
// back to the slack_webhook setting.
func sendSlack(ctx context.Context, suite *settings.Settings, content string) error {
	webhookURL := os.Getenv(envSlackWebhook)
	if webhookURL == "" {
		webhookURL = suite.SlackWebhook
	}

	slacker, err := report.NewSlacker(webhookURL)
	if err != nil {
		return err
	}

	return slacker.Send(ctx, content)
}
