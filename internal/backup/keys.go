package backup

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Backup frequencies, doubling as the top-level path of each stored dump.
const (
	FrequencyHourly  = "hourly"
	FrequencyDaily   = "daily"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// timestampLayouts pins how fine-grained each frequency's key timestamp is;
// copies within the same period collapse onto the same key.
var timestampLayouts = map[string]string{
	FrequencyHourly:  "2006-01-02-150405",
	FrequencyDaily:   "2006-01-02",
	FrequencyMonthly: "2006-01",
	FrequencyYearly:  "2006",
}

// frequencies in upload order: the hourly dump is created first and the
// rest are server-side copies of it.
var frequencies = []string{FrequencyHourly, FrequencyDaily, FrequencyMonthly, FrequencyYearly}

var keyRe = regexp.MustCompile(`^(?P<frequency>[^/]+)/(?P<folder>[^/]+)/(?P<database>[^/_]+)_(?P<timestamp>.+)\.sql\.gz$`)

// Key builds the object key of a dump: {frequency}/{folder}/{database}_{timestamp}.sql.gz
func Key(frequency, folder, database string, ts time.Time) string {
	return fmt.Sprintf("%s/%s/%s_%s.sql.gz", frequency, folder, database, ts.Format(timestampLayouts[frequency]))
}

// KeyParts are the components of a parsed dump key.
type KeyParts struct {
	Frequency string
	Folder    string
	Database  string
	Timestamp string
}

// ParseKey splits a dump key into its parts. Objects with foreign keys (for
// example the settings object) simply do not match.
func ParseKey(key string) (KeyParts, bool) {
	m := keyRe.FindStringSubmatch(key)
	if m == nil {
		return KeyParts{}, false
	}
	return KeyParts{Frequency: m[1], Folder: m[2], Database: m[3], Timestamp: m[4]}, true
}

// Slugify normalizes a folder alias into a key-safe path segment: lowercase,
// alphanumeric runs joined by single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
