package utils

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat marks a date or time string that does not match the
// required pattern. ErrInvalidValue marks a numeric field that is not a
// positive number.
var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidValue  = errors.New("invalid value")
)

const (
	calendarDateLayout = "2006-01-02"
	clockTimeLayout    = "15:04"
)

// ParseCalendarDate accepts strictly YYYY-MM-DD. time.Parse is lenient
// about leading zeros, so the round-trip is compared against the input.
func ParseCalendarDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(calendarDateLayout, s, time.UTC)
	if err != nil || t.Format(calendarDateLayout) != s {
		return time.Time{}, fmt.Errorf("%w: date must be yyyy-mm-dd", ErrInvalidFormat)
	}
	return t, nil
}

// ParseClockTime accepts strictly HH:MM.
func ParseClockTime(s string) (time.Time, error) {
	t, err := time.Parse(clockTimeLayout, s)
	if err != nil || t.Format(clockTimeLayout) != s {
		return time.Time{}, fmt.Errorf("%w: time must be hh:mm", ErrInvalidFormat)
	}
	return t, nil
}

// CombineDateAndTime merges a calendar date and a clock time into one
// absolute UTC instant.
func CombineDateAndTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// RequirePositiveAmount fails when x is not strictly greater than zero.
func RequirePositiveAmount(x float64, fieldName string) error {
	if !(x > 0) {
		return fmt.Errorf("%w: %s must be a number greater than 0", ErrInvalidValue, fieldName)
	}
	return nil
}
