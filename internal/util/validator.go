package util

import (
	"fmt"
	"time"
)

// dateLayouts are the formats API clients actually send: a bare date
// from the form, and RFC3339 variants from programmatic callers.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses an entry date string.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// FormatDate renders a date the way exports and the CLI display it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
