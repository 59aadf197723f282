package config

import "errors"

var (
	// ErrMissingInterpreter is returned when no interpreter is configured.
	ErrMissingInterpreter = errors.New("missing interpreter path")
	// ErrMissingBackuperScript is returned when the backuper program path is empty.
	ErrMissingBackuperScript = errors.New("missing backuper script path")
	// ErrMissingReporterScript is returned when the reporter program path is empty.
	ErrMissingReporterScript = errors.New("missing reporter script path")
	// ErrInvalidCronSchedule is returned when the configured cron expression does not parse.
	ErrInvalidCronSchedule = errors.New("invalid cron schedule")
	// ErrInvalidConfigFile is returned when the configuration file is invalid.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
