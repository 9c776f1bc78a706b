package domain

import (
	"time"

	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/timegrid"
)

// CalendarDay holds one grid cell: a date, its display flags, and the events
// whose start falls on that date.
type CalendarDay struct {
	Date           time.Time       `json:"date"`
	IsToday        bool            `json:"is_today"`
	IsCurrentMonth bool            `json:"is_current_month"`
	IsWeekend      bool            `json:"is_weekend"`
	Events         []CalendarEvent `json:"events"`
}

// CalendarWeek is 7 contiguous days beginning on Sunday.
type CalendarWeek struct {
	WeekNumber int           `json:"week_number"`
	Days       []CalendarDay `json:"days"`
}

// CalendarMonth is the set of whole weeks tiling a calendar month.
type CalendarMonth struct {
	Year  int            `json:"year"`
	Month time.Month     `json:"month"`
	Weeks []CalendarWeek `json:"weeks"`
}

// BucketEventsByDay groups events by the calendar date of their start.
// Comparison is plain year/month/day equality in the event's own location;
// no per-brand timezone conversion is applied here.
func BucketEventsByDay(events []CalendarEvent) map[string][]CalendarEvent {
	buckets := make(map[string][]CalendarEvent)
	for _, ev := range events {
		key := dayKey(ev.Start)
		buckets[key] = append(buckets[key], ev)
	}
	return buckets
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func buildDay(date time.Time, month time.Month, buckets map[string][]CalendarEvent) CalendarDay {
	return CalendarDay{
		Date:           date,
		IsToday:        timegrid.IsToday(date),
		IsCurrentMonth: date.Month() == month,
		IsWeekend:      timegrid.IsWeekend(date),
		Events:         buckets[dayKey(date)],
	}
}

// BuildMonth projects events onto the month grid containing ref. Weeks are
// generated from the Sunday on/before the 1st until a week whose Saturday is
// on/after the last day of the month.
func BuildMonth(ref time.Time, events []CalendarEvent) CalendarMonth {
	buckets := BucketEventsByDay(events)
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	month := CalendarMonth{
		Year:  ref.Year(),
		Month: ref.Month(),
	}

	cursor := timegrid.StartOfWeek(firstOfMonth)
	for {
		week := CalendarWeek{WeekNumber: timegrid.WeekNumber(cursor)}
		for i := 0; i < 7; i++ {
			week.Days = append(week.Days, buildDay(cursor, ref.Month(), buckets))
			cursor = cursor.AddDate(0, 0, 1)
		}
		month.Weeks = append(month.Weeks, week)

		// cursor now sits on the next week's Sunday; stop once the week we
		// just emitted covered the end of the month.
		if !cursor.Before(timegrid.StartOfDay(lastOfMonth).AddDate(0, 0, 1)) {
			break
		}
	}

	return month
}

// BuildWeek projects events onto the single week containing ref.
func BuildWeek(ref time.Time, events []CalendarEvent) CalendarWeek {
	buckets := BucketEventsByDay(events)
	cursor := timegrid.StartOfWeek(ref)

	week := CalendarWeek{WeekNumber: timegrid.WeekNumber(cursor)}
	for i := 0; i < 7; i++ {
		week.Days = append(week.Days, buildDay(cursor, ref.Month(), buckets))
		cursor = cursor.AddDate(0, 0, 1)
	}
	return week
}

// BuildDay projects events onto the single day of ref.
func BuildDay(ref time.Time, events []CalendarEvent) CalendarDay {
	buckets := BucketEventsByDay(events)
	return buildDay(timegrid.StartOfDay(ref), ref.Month(), buckets)
}
