package validation

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// ParseISODate parses a calendar date in ISO 8601 form (2006-01-02)
func ParseISODate(s string) (time.Time, error) {
	return time.Parse(isoDateLayout, strings.TrimSpace(s))
}

// FormatISODate renders a calendar date in ISO 8601 form
func FormatISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}
