package utils

import (
	"strings"
	"time"
)

// BRDateLayout is the day-precision date format used throughout the app
// (dd/mm/yyyy), matching how dates were always entered in the spreadsheets.
const BRDateLayout = "02/01/2006"

// ParseBRDate parses a dd/mm/yyyy string into a calendar date (UTC midnight).
func ParseBRDate(s string) (time.Time, error) {
	return time.Parse(BRDateLayout, strings.TrimSpace(s))
}

// FormatBRDate renders a time as dd/mm/yyyy.
func FormatBRDate(t time.Time) string {
	return t.Format(BRDateLayout)
}

// DateOnly truncates a timestamp to its calendar day (UTC midnight), so
// comparisons between dates and "now" work on whole days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays advances a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
