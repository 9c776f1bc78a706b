package domain

import (
	"time"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
)

// EventColor is the status-derived styling of a calendar event.
type EventColor string

const (
	ColorAmber EventColor = "amber"
	ColorBlue  EventColor = "blue"
	ColorGreen EventColor = "green"
	ColorRed   EventColor = "red"
	ColorGray  EventColor = "gray"
)

// CalendarEvent is a derived projection of a scheduled post. It is never
// persisted: it is recomputed on every load and only mutated by the
// reschedule commit step.
type CalendarEvent struct {
	ID        string                   `json:"id"`
	Title     string                   `json:"title"`
	Start     time.Time                `json:"start"`
	End       time.Time                `json:"end"`
	Color     EventColor               `json:"color"`
	PostID    string                   `json:"post_id"`
	BrandID   string                   `json:"brand_id"`
	Status    contentDomain.PostStatus `json:"status"`
	Platforms []string                 `json:"platforms"`
	Summary   string                   `json:"summary"`
}

// ColorForStatus maps a post status to its calendar color.
func ColorForStatus(status contentDomain.PostStatus) EventColor {
	switch status {
	case contentDomain.PostStatusDraft:
		return ColorAmber
	case contentDomain.PostStatusScheduled:
		return ColorBlue
	case contentDomain.PostStatusPublished:
		return ColorGreen
	case contentDomain.PostStatusFailed:
		return ColorRed
	default:
		return ColorGray
	}
}

// EventFromPost converts a post with a schedule into a calendar event.
// End defaults to Start: posts have no duration concept on the grid.
func EventFromPost(post contentDomain.Post) CalendarEvent {
	start := post.Schedule.RunAt
	summary := post.Content.Hook
	if summary == "" {
		summary = post.Content.Body
	}
	return CalendarEvent{
		ID:        "event-" + post.ID,
		Title:     post.Title,
		Start:     start,
		End:       start,
		Color:     ColorForStatus(post.Status),
		PostID:    post.ID,
		BrandID:   post.BrandID,
		Status:    post.Status,
		Platforms: post.Content.Platforms,
		Summary:   summary,
	}
}
