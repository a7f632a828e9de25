package timeline

import (
	"strings"
	"time"
)

// Window is a run of WindowMonths calendar months starting on the first day
// of a month, in UTC.
type Window struct {
	Start time.Time
}

// NewWindow returns the window beginning at the month containing t.
func NewWindow(t time.Time) Window {
	return Window{Start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// Months returns the first day of every month in the window.
func (w Window) Months() []time.Time {
	months := make([]time.Time, WindowMonths)
	for i := range months {
		months[i] = w.Start.AddDate(0, i, 0)
	}
	return months
}

// End returns the first day after the window.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, WindowMonths, 0)
}

// MonthIndex reports which window month contains date, matching on
// calendar year and month only.
func (w Window) MonthIndex(date time.Time) (int, bool) {
	idx := (date.Year()-w.Start.Year())*12 + int(date.Month()) - int(w.Start.Month())
	if idx < 0 || idx >= WindowMonths {
		return 0, false
	}
	return idx, true
}

// DaysIn returns the number of days in the month of t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate reads an ISO 8601 calendar date. Full RFC 3339 timestamps are
// accepted and reduced to their own calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// ParseMonth reads a YYYY-MM month.
func ParseMonth(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
