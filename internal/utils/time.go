package utils

import (
	"time"

	"github.com/google/uuid"
)

// FormatDate formats a time.Time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a date string in YYYY-MM-DD format
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// Today returns the current date formatted as YYYY-MM-DD
func Today() string {
	return FormatDate(time.Now())
}

// GenerateUUID returns a new random UUID string
func GenerateUUID() string {
	return uuid.NewString()
}
