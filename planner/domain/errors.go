package domain

import "errors"

var (
	// ErrEventNotFound means the UI asked to move an event the store no
	// longer holds: a client logic error, not a retryable condition.
	ErrEventNotFound = errors.New("calendar event not found")

	// ErrRescheduleInFlight means a second reschedule was issued for an
	// event whose previous reschedule has not settled yet.
	ErrRescheduleInFlight = errors.New("reschedule already in flight for this event")

	// ErrScheduleResolution wraps failures while fetching the existing
	// schedule record. A missing schedule is NOT a resolution error; absence
	// is control flow and routes to create-instead-of-update.
	ErrScheduleResolution = errors.New("failed to resolve schedule")

	// ErrScheduleCreate wraps failures creating a schedule record.
	ErrScheduleCreate = errors.New("failed to create schedule")

	// ErrScheduleUpdate wraps failures updating a schedule record.
	ErrScheduleUpdate = errors.New("failed to update schedule")
)
