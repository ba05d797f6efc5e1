// pkg/normalize/date.go
package normalize

import (
	"strings"
	"time"
)

// Formats tried in order when parsing a date string.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
}

// Date parses a value into a calendar date and validates it against
// [min, max]. Accepts time.Time values as-is (bounds still apply).
// Returns (zero, false) when parsing fails or the date is outside the
// plausible window, rejecting obviously wrong dates such as those
// before 1900 or in the future.
func Date(v any, min, max time.Time) (time.Time, bool) {
	var t time.Time

	switch val := v.(type) {
	case time.Time:
		t = val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		parsed, ok := parseDateString(s)
		if !ok {
			return time.Time{}, false
		}
		t = parsed
	default:
		return time.Time{}, false
	}

	if t.Before(min) || t.After(max) {
		return time.Time{}, false
	}

	return t, true
}

func parseDateString(s string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
