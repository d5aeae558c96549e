package utils

import (
	"strings"
	"time"
)

// ParseDuration safely parses duration string like "5m"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil || duration <= 0 {
		return 5 * time.Minute
	}
	return duration
}

// StripQuotes removes every leading and trailing double quote
func StripQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// CleanCell strips surrounding quotes, then surrounding whitespace
func CleanCell(s string) string {
	return strings.TrimSpace(StripQuotes(s))
}
