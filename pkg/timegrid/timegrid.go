package timegrid

import (
	"fmt"
	"time"
)

// ViewType is the calendar granularity the UI is currently rendering.
type ViewType string

const (
	ViewMonth ViewType = "month"
	ViewWeek  ViewType = "week"
	ViewDay   ViewType = "day"
)

// ParseView returns the ViewType for a string, defaulting to month.
func ParseView(s string) ViewType {
	switch ViewType(s) {
	case ViewWeek:
		return ViewWeek
	case ViewDay:
		return ViewDay
	default:
		return ViewMonth
	}
}

// StartOfDay returns t truncated to 00:00:00.000 in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns t at 23:59:59.999 in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfWeek returns the Sunday 00:00 on or before t. Week start is fixed
// to Sunday; there is no locale handling.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek returns the Saturday 23:59:59.999 on or after t.
func EndOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return EndOfDay(d.AddDate(0, 0, 6-int(d.Weekday())))
}

// RangeFor computes the visible date range for a reference date and view.
// Month ranges are extended to whole weeks on both ends so the grid always
// tiles completely.
func RangeFor(ref time.Time, view ViewType) (time.Time, time.Time) {
	switch view {
	case ViewWeek:
		return StartOfWeek(ref), EndOfWeek(ref)
	case ViewDay:
		return StartOfDay(ref), EndOfDay(ref)
	default:
		firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
		return StartOfWeek(firstOfMonth), EndOfWeek(lastOfMonth)
	}
}

// IsSameDay reports whether a and b fall on the same calendar date. Each
// value is read in its own location, matching the behavior of comparing
// native dates field by field.
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsToday reports whether t falls on the current calendar date in t's location.
func IsToday(t time.Time) bool {
	return IsSameDay(t, time.Now().In(t.Location()))
}

// WeekNumber returns the week-of-year for t using a day-of-year divide.
// This is deliberately NOT ISO-8601: week 1 starts on January 1st regardless
// of weekday, and the first-of-year's weekday shifts the boundary. Existing
// UI labels depend on this exact formula.
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	offset := t.YearDay() - 1
	return (offset+int(jan1.Weekday()))/7 + 1
}

// FormatRangeLabel renders the navigation header label for a view.
// The exact formats are a display contract; goldens pin them.
func FormatRangeLabel(ref time.Time, view ViewType) string {
	switch view {
	case ViewWeek:
		start, end := RangeFor(ref, ViewWeek)
		return fmt.Sprintf("%s - %s, %d", start.Format("Jan 2"), end.Format("Jan 2"), end.Year())
	case ViewDay:
		return ref.Format("Monday, January 2, 2006")
	default:
		return ref.Format("January 2006")
	}
}
