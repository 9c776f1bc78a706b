package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
	plannerDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/domain"
	"github.com/sirupsen/logrus"
)

const rescheduleTimeout = 30 * time.Second

// RescheduleRequest describes one drag-drop or slot-click interaction.
// TargetHour is nil for whole-day (month view) drops, in which case the
// event's existing time-of-day is preserved; week/day slot drops carry the
// slot hour.
type RescheduleRequest struct {
	EventID    string
	TargetDate time.Time
	TargetHour *int
}

// RescheduleCoordinator drives one reschedule operation: resolve the
// affected schedule (fetch-or-create), issue the write, and commit the local
// event only after server confirmation. On failure the event list is left
// untouched and the caller surfaces the error.
type RescheduleCoordinator struct {
	store     *EventStore
	schedules plannerDomain.ISchedulesAPI

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewRescheduleCoordinator(store *EventStore, schedules plannerDomain.ISchedulesAPI) *RescheduleCoordinator {
	return &RescheduleCoordinator{
		store:     store,
		schedules: schedules,
		inflight:  make(map[string]struct{}),
	}
}

// Reschedule moves an event to the requested date/slot. Operations on
// distinct events run concurrently; a second operation on an event already
// mid-flight is rejected with ErrRescheduleInFlight.
func (c *RescheduleCoordinator) Reschedule(ctx context.Context, req RescheduleRequest) (plannerDomain.CalendarEvent, error) {
	if !c.acquire(req.EventID) {
		return plannerDomain.CalendarEvent{}, plannerDomain.ErrRescheduleInFlight
	}
	defer c.release(req.EventID)

	event, ok := c.store.FindEvent(req.EventID)
	if !ok {
		// Stale UI state: the event list no longer holds this id. The
		// caller should reload rather than retry.
		return plannerDomain.CalendarEvent{}, plannerDomain.ErrEventNotFound
	}

	newRunAt := computeRunAt(event.Start, req)

	ctx, cancel := context.WithTimeout(ctx, rescheduleTimeout)
	defer cancel()

	schedule, found, err := c.schedules.GetScheduleByPost(ctx, event.PostID)
	if err != nil {
		return plannerDomain.CalendarEvent{}, fmt.Errorf("%w: %v", plannerDomain.ErrScheduleResolution, err)
	}

	var confirmed contentDomain.Schedule
	if found {
		tz := schedule.Timezone
		if tz == "" {
			tz = "UTC"
		}
		confirmed, err = c.schedules.PatchSchedule(ctx, schedule.ID, contentDomain.SchedulePatch{
			RunAt:    &newRunAt,
			Timezone: &tz,
		})
		if err != nil {
			return plannerDomain.CalendarEvent{}, fmt.Errorf("%w: %v", plannerDomain.ErrScheduleUpdate, err)
		}
	} else {
		confirmed, err = c.schedules.CreateSchedule(ctx, contentDomain.Schedule{
			PostID:   event.PostID,
			RunAt:    newRunAt,
			Timezone: "UTC",
			Status:   contentDomain.ScheduleStatusPending,
		})
		if err != nil {
			return plannerDomain.CalendarEvent{}, fmt.Errorf("%w: %v", plannerDomain.ErrScheduleCreate, err)
		}
	}

	// Commit only after server confirmation, then reconcile against the
	// source of truth.
	event.Start = confirmed.RunAt
	event.End = confirmed.RunAt
	if req.TargetHour != nil {
		event.End = confirmed.RunAt.Add(time.Hour)
	}
	c.store.ReplaceEvent(event)

	if err := c.store.LoadEvents(ctx); err != nil {
		logrus.WithError(err).Warn("[CALENDAR] Reconcile load after reschedule failed")
	}

	return event, nil
}

// computeRunAt determines the new run instant. Month-view (whole-day) drops
// keep the event's original time-of-day and change only the date; week/day
// drops take the target slot's hour with minute zero.
func computeRunAt(currentStart time.Time, req RescheduleRequest) time.Time {
	d := req.TargetDate
	if req.TargetHour != nil {
		return time.Date(d.Year(), d.Month(), d.Day(), *req.TargetHour, 0, 0, 0, time.UTC)
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		currentStart.Hour(), currentStart.Minute(), currentStart.Second(), 0, time.UTC)
}

func (c *RescheduleCoordinator) acquire(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[eventID]; busy {
		return false
	}
	c.inflight[eventID] = struct{}{}
	return true
}

func (c *RescheduleCoordinator) release(eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, eventID)
}
