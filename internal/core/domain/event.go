package domain

import (
	"errors"
	"fmt"
	"time"
)

// Wire formats for the date and time form fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrInvalidDateTimeFormat = errors.New("invalid date or time format")
)

// Event is a single calendar entry. Date holds midnight UTC of the calendar
// day; Time holds the time of day on the zero date (0000-01-01 UTC).
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        time.Time `json:"time"`
	Location    string    `json:"location"`
}

// DateString renders Date in DateLayout.
func (e Event) DateString() string {
	return e.Date.Format(DateLayout)
}

// TimeString renders Time in TimeLayout.
func (e Event) TimeString() string {
	return e.Time.Format(TimeLayout)
}

// StartsAt combines Date and Time into one instant in loc.
func (e Event) StartsAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(),
		e.Time.Hour(), e.Time.Minute(), 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD calendar date. Impossible dates such as
// 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidDateTimeFormat, s)
	}
	return d, nil
}

// ParseTime parses an HH:MM time of day on the 24-hour clock.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidDateTimeFormat, s)
	}
	return t, nil
}
