package domain

import "errors"

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrDuplicateSchedule = errors.New("post already has a schedule")
)
