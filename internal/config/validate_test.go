package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tc := map[string]struct {
		cfg     *Config
		wantErr error
	}{
		"valid config": {
			cfg: &Config{
				Interpreter:    "/usr/bin/python3",
				BackuperScript: "backuper.py",
				ReporterScript: "reporter.py",
			},
		},
		"valid config with schedule": {
			cfg: &Config{
				Interpreter:    "python",
				BackuperScript: "backuper.py",
				ReporterScript: "reporter.py",
				CronSchedule:   "*/5 * * * *",
			},
		},
		"missing interpreter": {
			cfg: &Config{
				BackuperScript: "backuper.py",
				ReporterScript: "reporter.py",
			},
			wantErr: ErrMissingInterpreter,
		},
		"missing backuper script": {
			cfg: &Config{
				Interpreter:    "python",
				ReporterScript: "reporter.py",
			},
			wantErr: ErrMissingBackuperScript,
		},
		"missing reporter script": {
			cfg: &Config{
				Interpreter:    "python",
				BackuperScript: "backuper.py",
			},
			wantErr: ErrMissingReporterScript,
		},
		"invalid cron schedule": {
			cfg: &Config{
				Interpreter:    "python",
				BackuperScript: "backuper.py",
				ReporterScript: "reporter.py",
				CronSchedule:   "61 * * * *",
			},
			wantErr: ErrInvalidCronSchedule,
		},
		"empty credentials are valid": {
			cfg: &Config{
				Interpreter:    "python",
				BackuperScript: "backuper.py",
				ReporterScript: "reporter.py",
				Credentials:    Credentials{},
			},
		},
	}

	for name, tc := range tc {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := validateConfig(tc.cfg)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateCronSchedule(t *testing.T) {
	t.Parallel()

	tc := map[string]struct {
		schedule string
		wantErr  bool
	}{
		"empty schedule means one-shot": {schedule: ""},
		"every five minutes":            {schedule: "*/5 * * * *"},
		"daily at midnight":             {schedule: "0 0 * * *"},
		"descriptor":                    {schedule: "@hourly"},
		"too few fields":                {schedule: "* * *", wantErr: true},
		"out of range minute":           {schedule: "61 * * * *", wantErr: true},
		"garbage":                       {schedule: "soon", wantErr: true},
	}

	for name, tc := range tc {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := validateCronSchedule(tc.schedule)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCronSchedule)
				return
			}
			require.NoError(t, err)
		})
	}
}
