package domain

// NavigateRequest moves the calendar reference date. Direction is "next",
// "previous" or "today".
type NavigateRequest struct {
	Direction string `json:"direction"`
}

// SetViewRequest switches the calendar view ("month", "week" or "day").
type SetViewRequest struct {
	View string `json:"view"`
}

// RescheduleEventRequest is the wire form of a drag-drop or slot-click
// interaction. TargetDate is a YYYY-MM-DD day; TargetHour is nil for
// whole-day drops.
type RescheduleEventRequest struct {
	EventID    string `json:"event_id"`
	TargetDate string `json:"target_date"`
	TargetHour *int   `json:"target_hour,omitempty"`
}
