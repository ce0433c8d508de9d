package utils

import (
	"fmt"
	"time"
)

// DayLayout is the wire format of calendar days
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into midnight UTC of that day
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Today truncates now to its calendar day in UTC
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOrToday parses s, falling back to today's day when s is empty
func DayOrToday(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return Today(now), nil
	}
	return ParseDay(s)
}

// EndOfDay returns the last instant of the day t falls on
func EndOfDay(t time.Time) time.Time {
	return Today(t).Add(24*time.Hour - time.Nanosecond)
}
