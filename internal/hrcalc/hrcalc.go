// Package hrcalc holds the attendance, leave and payroll arithmetic.
//
// Calendar days are UTC days.
package hrcalc

import (
	"errors"
	"math"
	"strings"
	"time"
)

const day = 24 * time.Hour

var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts a calendar date or a full timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseMonth validates a payroll month in YYYY-MM form.
func ParseMonth(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if _, err := time.Parse("2006-01", raw); err != nil {
		return "", ErrInvalidDate
	}
	return raw, nil
}

// ParseTimeOn reads raw as a full timestamp, or as a wall-clock time
// ("15:04" or "15:04:05") on day.
func ParseTimeOn(day time.Time, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if clock, err := time.Parse(layout, raw); err == nil {
			return StartOfDay(day).Add(time.Duration(clock.Hour())*time.Hour +
				time.Duration(clock.Minute())*time.Minute +
				time.Duration(clock.Second())*time.Second), nil
		}
	}
	return ParseDate(raw)
}

// StartOfDay truncates t to midnight of its UTC day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the first and last instant of t's UTC day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.Add(day - time.Millisecond)
}

// WorkHours is the time between check-in and check-out in hours, never
// negative.
func WorkHours(checkIn time.Time, checkOut time.Time) float64 {
	return math.Max(0, checkOut.Sub(checkIn).Hours())
}

// LeaveDays counts the days covered by a leave, end inclusive. Partial days
// round up. The result is zero or negative when end precedes start.
func LeaveDays(start time.Time, end time.Time) int {
	return int(math.Ceil(float64(end.Sub(start))/float64(day))) + 1
}

// NetSalary is basic pay plus allowance minus deduction.
func NetSalary(basic float64, allowance float64, deduction float64) float64 {
	return basic + allowance - deduction
}
