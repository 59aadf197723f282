package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// validateConfig validates the entire configuration. Credentials are never
// validated: the pipeline programs own their interpretation.
func validateConfig(cfg *Config) error {
	if cfg.Interpreter == "" {
		return fmt.Errorf("%w (set %s or configure in YAML)", ErrMissingInterpreter, EnvInterpreter)
	}

	if cfg.BackuperScript == "" {
		return fmt.Errorf("%w (set %s or configure in YAML)", ErrMissingBackuperScript, EnvBackuperScript)
	}

	if cfg.ReporterScript == "" {
		return fmt.Errorf("%w (set %s or configure in YAML)", ErrMissingReporterScript, EnvReporterScript)
	}

	return validateCronSchedule(cfg.CronSchedule)
}

// validateCronSchedule checks that a non-empty schedule parses as a standard
// 5-field cron expression.
func validateCronSchedule(schedule string) error {
	if schedule == "" {
		return nil
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCronSchedule, schedule)
	}

	return nil
}
