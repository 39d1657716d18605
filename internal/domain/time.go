package domain

import "time"

// TimeFormat is the wire format for timestamps: ISO 8601 with microseconds
// and no zone designator. Lexicographic order matches chronological order,
// which the repositories rely on for sorting.
const TimeFormat = "2006-01-02T15:04:05.000000"

// FormatTime renders a timestamp in the wire format (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
