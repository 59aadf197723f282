// Package config loads the pipeline launcher configuration from a YAML file
// with environment variable overrides.
package config

import (
	"fmt"
)

// Credentials are the three values exposed to the pipeline programs through
// their process environment. The launcher treats them as opaque strings:
// any value, including the empty string, is passed through unchanged.
type Credentials struct {
	MandrillAPIKey string `yaml:"mandrill_apikey"`
	PyraxUsername  string `yaml:"pyrax_username"`
	PyraxAPIKey    string `yaml:"pyrax_apikey"`
}

// Environ returns the credential set as KEY=value entries suitable for
// appending to a child process environment. Exactly three entries are
// returned, always in the same order.
func (c Credentials) Environ() []string {
	return []string{
		EnvMandrillAPIKey + "=" + c.MandrillAPIKey,
		EnvPyraxUsername + "=" + c.PyraxUsername,
		EnvPyraxAPIKey + "=" + c.PyraxAPIKey,
	}
}

// Config holds everything the launcher needs: which interpreter runs the two
// pipeline programs, where those programs live, the credentials delivered to
// them, and an optional cron schedule.
type Config struct {
	Interpreter    string      `yaml:"interpreter"`
	BackuperScript string      `yaml:"backuper_script"`
	ReporterScript string      `yaml:"reporter_script"`
	CronSchedule   string      `yaml:"cron_schedule"`
	Credentials    Credentials `yaml:"credentials"`
}

// NewConfig builds a Config by loading the YAML file named by
// BACKUP_PIPELINE_CONFIG_FILE (if any) and then applying environment
// variable overrides, and validates the result.
func NewConfig() (*Config, error) {
	const op = "config.NewConfig"

	cfg := &Config{
		BackuperScript: DefaultBackuperScript,
		ReporterScript: DefaultReporterScript,
	}

	if err := loadFromFile(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	loadFromEnv(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

// GetInterpreter returns the configured interpreter path.
func (c *Config) GetInterpreter() string {
	return c.Interpreter
}

// GetBackuperScript returns the path of the first pipeline program.
func (c *Config) GetBackuperScript() string {
	return c.BackuperScript
}

// GetReporterScript returns the path of the second pipeline program.
func (c *Config) GetReporterScript() string {
	return c.ReporterScript
}

// GetCronSchedule returns the configured cron expression, or the empty
// string when the pipeline should run once and exit.
func (c *Config) GetCronSchedule() string {
	return c.CronSchedule
}

// GetCredentials returns a copy of the credential set.
func (c *Config) GetCredentials() Credentials {
	return c.Credentials
}
