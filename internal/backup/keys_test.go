package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 17, 13, 4, 5, 0, time.UTC)

	tc := map[string]struct {
		frequency string
		expect    string
	}{
		"hourly":  {FrequencyHourly, "hourly/main-app/appdb_2024-05-17-130405.sql.gz"},
		"daily":   {FrequencyDaily, "daily/main-app/appdb_2024-05-17.sql.gz"},
		"monthly": {FrequencyMonthly, "monthly/main-app/appdb_2024-05.sql.gz"},
		"yearly":  {FrequencyYearly, "yearly/main-app/appdb_2024.sql.gz"},
	}

	for name, tc := range tc {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Key(tc.frequency, "main-app", "appdb", ts)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		ts := time.Date(2024, 5, 17, 13, 4, 5, 0, time.UTC)
		key := Key(FrequencyHourly, "main-app", "appdb", ts)

		parts, ok := ParseKey(key)
		require.True(t, ok)
		assert.Equal(t, FrequencyHourly, parts.Frequency)
		assert.Equal(t, "main-app", parts.Folder)
		assert.Equal(t, "appdb", parts.Database)
		assert.Equal(t, "2024-05-17-130405", parts.Timestamp)
	})

	t.Run("database part splits at the first underscore", func(t *testing.T) {
		t.Parallel()
		parts, ok := ParseKey("hourly/main-app/app_db_2024.sql.gz")
		require.True(t, ok)
		assert.Equal(t, "app", parts.Database)
		assert.Equal(t, "db_2024", parts.Timestamp)
	})

	tc := map[string]string{
		"settings object":   "backuper_settings.json",
		"missing frequency": "main-app/appdb_2024.sql.gz",
		"missing extension": "hourly/main-app/appdb_2024",
		"empty key":         "",
	}

	for name, key := range tc {
		key := key
		t.Run("no match: "+name, func(t *testing.T) {
			t.Parallel()
			_, ok := ParseKey(key)
			assert.False(t, ok)
		})
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tc := map[string]struct {
		in     string
		expect string
	}{
		"already clean":        {"appdb", "appdb"},
		"uppercase":            {"MainApp", "mainapp"},
		"spaces":               {"Main App", "main-app"},
		"underscores":          {"main_app_db", "main-app-db"},
		"consecutive symbols":  {"main -- app", "main-app"},
		"leading and trailing": {"--main app--", "main-app"},
		"unicode dropped":      {"café db", "caf-db"},
		"digits kept":          {"app2 db3", "app2-db3"},
		"empty":                {"", ""},
	}

	for name, tc := range tc {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expect, Slugify(tc.in))
		})
	}
}
