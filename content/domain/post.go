package domain

import "time"

// PostStatus is the approval lifecycle state of a post.
type PostStatus string

const (
	PostStatusDraft           PostStatus = "DRAFT"
	PostStatusPendingApproval PostStatus = "PENDING_APPROVAL"
	PostStatusScheduled       PostStatus = "SCHEDULED"
	PostStatusPublished       PostStatus = "PUBLISHED"
	PostStatusFailed          PostStatus = "FAILED"
	PostStatusPaused          PostStatus = "PAUSED"
)

// ScheduleStatus is the delivery state of a schedule record.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "PENDING"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusFailed    ScheduleStatus = "FAILED"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
)

// Schedule binds a post to a future publish instant. At most one Schedule
// exists per post; it is created lazily the first time the post is placed
// on the calendar.
type Schedule struct {
	ID        string         `json:"id"`
	PostID    string         `json:"post_id"`
	RunAt     time.Time      `json:"run_at"` // UTC instant
	Timezone  string         `json:"timezone"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PostContent is the publishable payload of a post.
type PostContent struct {
	Hook      string   `json:"hook"`
	Body      string   `json:"body"`
	Hashtags  []string `json:"hashtags"`
	Platforms []string `json:"platforms"`
}

// Post is owned by the external content service; this service only reads
// posts and triggers patches.
type Post struct {
	ID        string      `json:"id"`
	BrandID   string      `json:"brand_id"`
	BrandName string      `json:"brand_name,omitempty"`
	Title     string      `json:"title"`
	Content   PostContent `json:"content"`
	Status    PostStatus  `json:"status"`
	Schedule  *Schedule   `json:"schedule,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PostPatch carries a partial update toward the Posts API. Nil fields are
// left untouched.
type PostPatch struct {
	Title   *string      `json:"title,omitempty"`
	Status  *PostStatus  `json:"status,omitempty"`
	Content *PostContent `json:"content,omitempty"`
}

// SchedulePatch carries a partial update toward the Schedules API.
type SchedulePatch struct {
	RunAt    *time.Time `json:"run_at,omitempty"`
	Timezone *string    `json:"timezone,omitempty"`
}

// PostPreview is the approval-card projection of a post, as served by the
// Approval API preview endpoint.
type PostPreview struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	BrandName string      `json:"brand_name"`
	Status    PostStatus  `json:"status"`
	Content   PostContent `json:"content"`
	Schedule  *Schedule   `json:"schedule,omitempty"`
}
