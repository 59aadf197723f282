package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFromFile loads configuration from the YAML file named by EnvConfigFile
// into cfg. A missing variable or file is not an error, it just means the
// configuration comes entirely from the environment.
func loadFromFile(cfg *Config) error {
	const op = "config.loadFromFile"

	filePath := os.Getenv(EnvConfigFile)
	if filePath == "" {
		return nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("%s: failed to read file: %w", op, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidConfigFile, err)
	}

	return nil
}

// loadFromEnv overrides cfg fields from environment variables. Only set,
// non-empty variables override, except the credential variables where an
// explicitly set empty value is honored (credentials are opaque).
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvInterpreter); v != "" {
		cfg.Interpreter = v
	}
	if v := os.Getenv(EnvBackuperScript); v != "" {
		cfg.BackuperScript = v
	}
	if v := os.Getenv(EnvReporterScript); v != "" {
		cfg.ReporterScript = v
	}
	if v := os.Getenv(EnvCronSchedule); v != "" {
		cfg.CronSchedule = v
	}

	if v, ok := os.LookupEnv(EnvMandrillAPIKey); ok {
		cfg.Credentials.MandrillAPIKey = v
	}
	if v, ok := os.LookupEnv(EnvPyraxUsername); ok {
		cfg.Credentials.PyraxUsername = v
	}
	if v, ok := os.LookupEnv(EnvPyraxAPIKey); ok {
		cfg.Credentials.PyraxAPIKey = v
	}
}
