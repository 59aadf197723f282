// Package main provides the backuper: it dumps every configured MySQL
// database, stores the compressed dumps in the backups bucket and writes a
// result summary to stdout for the reporter to pick up.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"backup-pipeline/internal/backup"
	"backup-pipeline/internal/config"
	"backup-pipeline/internal/s3"
	"backup-pipeline/internal/settings"
)

// Optional storage endpoint overrides for S3-compatible providers.
const (
	envStorageEndpoint = "PYRAX_ENDPOINT"
	envStorageRegion   = "PYRAX_REGION"
)

// logLevel is mutable so -v can lower it; stdout stays reserved for the
// report lines the next pipeline stage consumes.
var logLevel = new(slog.LevelVar)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func main() {
	var overwrite, dryRun, verbose bool
	flag.BoolVar(&overwrite, "o", false, "overwrite existing daily/monthly/yearly copies")
	flag.BoolVar(&overwrite, "overwrite", false, "overwrite existing daily/monthly/yearly copies")
	flag.BoolVar(&dryRun, "d", false, "do not dump, upload or delete anything, only log every action")
	flag.BoolVar(&dryRun, "dry-run", false, "do not dump, upload or delete anything, only log every action")
	flag.BoolVar(&verbose, "v", false, "show more output")
	flag.BoolVar(&verbose, "verbose", false, "show more output")
	flag.Parse()

	if verbose {
		logLevel.Set(slog.LevelDebug)
	}

	ctx := context.Background()

	username, err := settings.Env(config.EnvPyraxUsername)
	if err != nil {
		slog.Error("missing storage identity", "error", err)
		os.Exit(1)
	}
	apiKey, err := settings.Env(config.EnvPyraxAPIKey)
	if err != nil {
		slog.Error("missing storage API key", "error", err)
		os.Exit(1)
	}

	client, err := s3.NewClient(ctx, username, apiKey, s3.Options{
		Region:   os.Getenv(envStorageRegion),
		Endpoint: os.Getenv(envStorageEndpoint),
	})
	if err != nil {
		slog.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}

	store, err := s3.NewStore(client, settings.Container)
	if err != nil {
		slog.Error("failed to create object store", "error", err)
		os.Exit(1)
	}

	suite, err := settings.Load(ctx, store)
	if err != nil {
		slog.Error("failed to load settings", "object", settings.ObjectName, "error", err)
		os.Exit(1)
	}

	backuper, err := backup.NewBackuper(store, suite, os.Stdout, backup.Options{
		Overwrite: overwrite,
		DryRun:    dryRun,
	})
	if err != nil {
		slog.Error("failed to create backuper", "error", err)
		os.Exit(1)
	}

	slog.Debug("dumping databases", "count", len(suite.Databases))

	if err := backuper.Run(ctx); err != nil {
		slog.Error("backup run failed", "error", err)
		os.Exit(1)
	}
}
