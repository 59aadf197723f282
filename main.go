// Package main provides the backup-pipeline launcher: it exposes the
// credential set to the backuper and reporter programs and runs them as a
// two-stage pipeline, exiting with the reporter's exit code.
package main

import (
	"context"
	"log/slog"
	"os"

	"backup-pipeline/internal/config"
	"backup-pipeline/internal/pipeline"

	"github.com/robfig/cron/v3"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded successfully",
		"interpreter", cfg.GetInterpreter(),
		"backuper_script", cfg.GetBackuperScript(),
		"reporter_script", cfg.GetReporterScript(),
		"cron_schedule", cfg.GetCronSchedule())

	launcher, err := pipeline.NewLauncher(cfg)
	if err != nil {
		slog.Error("failed to create launcher", "error", err)
		os.Exit(1)
	}

	// Check if cron schedule is configured
	if cfg.GetCronSchedule() != "" {
		slog.Info("starting pipeline scheduler", "schedule", cfg.GetCronSchedule())
		c := cron.New()
		if _, err := c.AddFunc(cfg.GetCronSchedule(), func() {
			code, err := launcher.Run(ctx)
			if err != nil {
				slog.Error("pipeline run failed", "error", err)
				return
			}
			slog.Info("pipeline run finished", "exit_code", code)
		}); err != nil {
			slog.Error("scheduler failed", "error", err)
			os.Exit(1)
		}
		c.Run()
		return
	}

	// One-time pipeline run
	code, err := launcher.Run(ctx)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
	os.Exit(code)
}
