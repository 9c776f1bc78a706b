package application

import (
	"context"
	"sync"
	"time"

	plannerDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/timegrid"
	"github.com/sirupsen/logrus"
)

// BroadcastFunc receives store notifications after the event list changes.
// The websocket hub hooks in here.
type BroadcastFunc func(code string, payload any)

// EventStore holds the calendar view state: current granularity, reference
// date, and the loaded events. LoadEvents is the only path that refreshes
// truth from the content service; reschedule commits go through
// ReplaceEvent and then trigger a reload.
type EventStore struct {
	mu      sync.Mutex
	view    timegrid.ViewType
	refDate time.Time
	events  []plannerDomain.CalendarEvent

	posts     plannerDomain.IPostsAPI
	broadcast BroadcastFunc
	nowFn     func() time.Time
}

// NewEventStore creates a store positioned on today's month view.
func NewEventStore(posts plannerDomain.IPostsAPI) *EventStore {
	return &EventStore{
		view:    timegrid.ViewMonth,
		refDate: time.Now().UTC(),
		posts:   posts,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
}

// SetBroadcast installs the notification hook. Pass nil to disable.
func (s *EventStore) SetBroadcast(fn BroadcastFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcast = fn
}

// SetView switches granularity without moving the reference date.
func (s *EventStore) SetView(view timegrid.ViewType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// View returns the current granularity.
func (s *EventStore) View() timegrid.ViewType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// ReferenceDate returns the current reference date.
func (s *EventStore) ReferenceDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refDate
}

// NavigateNext moves the reference date forward one unit of the current view.
// Month steps use the host calendar's own month-length clipping.
func (s *EventStore) NavigateNext() {
	s.step(1)
}

// NavigatePrevious moves the reference date back one unit of the current view.
func (s *EventStore) NavigatePrevious() {
	s.step(-1)
}

func (s *EventStore) step(direction int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.view {
	case timegrid.ViewWeek:
		s.refDate = s.refDate.AddDate(0, 0, 7*direction)
	case timegrid.ViewDay:
		s.refDate = s.refDate.AddDate(0, 0, direction)
	default:
		s.refDate = s.refDate.AddDate(0, direction, 0)
	}
}

// NavigateToday resets the reference date to now without changing the view.
func (s *EventStore) NavigateToday() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refDate = s.nowFn()
}

// Range returns the visible date range for the current state.
func (s *EventStore) Range() (time.Time, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timegrid.RangeFor(s.refDate, s.view)
}

// RangeLabel returns the navigation header label for the current state.
func (s *EventStore) RangeLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timegrid.FormatRangeLabel(s.refDate, s.view)
}

// LoadEvents fetches all posts, filters to schedules inside the visible
// range, and replaces the in-memory event list.
//
// Overlapping calls are not coalesced and there is no request cancellation:
// whichever fetch completes last wins. Callers should only rely on the state
// after in-flight loads settle.
func (s *EventStore) LoadEvents(ctx context.Context) error {
	s.mu.Lock()
	start, end := timegrid.RangeFor(s.refDate, s.view)
	s.mu.Unlock()

	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		logrus.WithError(err).Error("[CALENDAR] Failed to load posts")
		return err
	}

	events := make([]plannerDomain.CalendarEvent, 0, len(posts))
	for _, post := range posts {
		if post.Schedule == nil {
			continue
		}
		runAt := post.Schedule.RunAt
		if runAt.Before(start) || runAt.After(end) {
			continue
		}
		events = append(events, plannerDomain.EventFromPost(post))
	}

	s.mu.Lock()
	s.events = events
	fn := s.broadcast
	s.mu.Unlock()

	logrus.Debugf("[CALENDAR] Loaded %d events in range %s - %s", len(events), start.Format(time.RFC3339), end.Format(time.RFC3339))

	if fn != nil {
		fn("calendar.reloaded", map[string]any{"count": len(events)})
	}
	return nil
}

// Events returns a snapshot of the loaded events.
func (s *EventStore) Events() []plannerDomain.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]plannerDomain.CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

// FindEvent looks up an event by id in the current list.
func (s *EventStore) FindEvent(id string) (plannerDomain.CalendarEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return plannerDomain.CalendarEvent{}, false
}

// ReplaceEvent swaps the stored event with the given id. Used by the
// reschedule commit step only, never by the UI directly.
//
// A fresh slice is installed instead of writing in place: the projections
// hand out the current backing array after unlocking, so a published array
// must never be mutated.
func (s *EventStore) ReplaceEvent(updated plannerDomain.CalendarEvent) {
	s.mu.Lock()
	fn := s.broadcast
	next := make([]plannerDomain.CalendarEvent, len(s.events))
	copy(next, s.events)
	for i, ev := range next {
		if ev.ID == updated.ID {
			next[i] = updated
			break
		}
	}
	s.events = next
	s.mu.Unlock()

	if fn != nil {
		fn("schedule.moved", updated)
	}
}

// Month projects the current event list onto the month grid of the
// reference date.
func (s *EventStore) Month() plannerDomain.CalendarMonth {
	s.mu.Lock()
	ref, events := s.refDate, s.events
	s.mu.Unlock()
	return plannerDomain.BuildMonth(ref, events)
}

// Week projects the current event list onto the week containing the
// reference date.
func (s *EventStore) Week() plannerDomain.CalendarWeek {
	s.mu.Lock()
	ref, events := s.refDate, s.events
	s.mu.Unlock()
	return plannerDomain.BuildWeek(ref, events)
}

// Day projects the current event list onto the reference date.
func (s *EventStore) Day() plannerDomain.CalendarDay {
	s.mu.Lock()
	ref, events := s.refDate, s.events
	s.mu.Unlock()
	return plannerDomain.BuildDay(ref, events)
}

// SetReferenceDate jumps the calendar to an arbitrary date.
func (s *EventStore) SetReferenceDate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refDate = t
}
