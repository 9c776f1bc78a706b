package contentapi

import (
	"context"
	"fmt"
	"net/http"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
)

// SchedulesClient talks to the remote Schedules API.
type SchedulesClient struct {
	baseURL string
	token   string
}

func NewSchedulesClient(cfg Config) *SchedulesClient {
	return &SchedulesClient{baseURL: cfg.SchedulesURL, token: cfg.APIToken}
}

// GetScheduleByPost looks up the schedule owned by a post. A 404 is not an
// error: it reports found=false so the caller can create instead of update.
func (c *SchedulesClient) GetScheduleByPost(ctx context.Context, postID string) (contentDomain.Schedule, bool, error) {
	var schedule contentDomain.Schedule
	status, err := jsonRequest(ctx, http.MethodGet, c.baseURL+"/schedules/post/"+postID, c.token, nil, &schedule)
	if status == http.StatusNotFound {
		return contentDomain.Schedule{}, false, nil
	}
	if err != nil {
		return contentDomain.Schedule{}, false, fmt.Errorf("get schedule for post %s: %w", postID, err)
	}
	return schedule, true, nil
}

func (c *SchedulesClient) CreateSchedule(ctx context.Context, schedule contentDomain.Schedule) (contentDomain.Schedule, error) {
	var created contentDomain.Schedule
	if _, err := jsonRequest(ctx, http.MethodPost, c.baseURL+"/schedules", c.token, schedule, &created); err != nil {
		return contentDomain.Schedule{}, fmt.Errorf("create schedule for post %s: %w", schedule.PostID, err)
	}
	return created, nil
}

func (c *SchedulesClient) PatchSchedule(ctx context.Context, id string, patch contentDomain.SchedulePatch) (contentDomain.Schedule, error) {
	var updated contentDomain.Schedule
	if _, err := jsonRequest(ctx, http.MethodPatch, c.baseURL+"/schedules/"+id, c.token, patch, &updated); err != nil {
		return contentDomain.Schedule{}, fmt.Errorf("patch schedule %s: %w", id, err)
	}
	return updated, nil
}
