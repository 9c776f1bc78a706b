package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
	plannerApp "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/application"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContentAPI backs both the posts and schedules contracts with one
// mutable post, so reconcile loads after a reschedule observe the committed
// run time.
type stubContentAPI struct {
	mu   sync.Mutex
	post contentDomain.Post
}

func newStubContentAPI(runAt time.Time) *stubContentAPI {
	return &stubContentAPI{
		post: contentDomain.Post{
			ID:      "post-1",
			BrandID: "brand-1",
			Title:   "Launch teaser",
			Status:  contentDomain.PostStatusScheduled,
			Content: contentDomain.PostContent{Hook: "Big reveal"},
			Schedule: &contentDomain.Schedule{
				ID:       "sched-1",
				PostID:   "post-1",
				RunAt:    runAt,
				Timezone: "UTC",
				Status:   contentDomain.ScheduleStatusPending,
			},
		},
	}
}

func (s *stubContentAPI) ListPosts(ctx context.Context) ([]contentDomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []contentDomain.Post{s.post}, nil
}

func (s *stubContentAPI) GetPost(ctx context.Context, id string) (contentDomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.post, nil
}

func (s *stubContentAPI) PatchPost(ctx context.Context, id string, patch contentDomain.PostPatch) (contentDomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.post, nil
}

func (s *stubContentAPI) GetScheduleByPost(ctx context.Context, postID string) (contentDomain.Schedule, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.post.Schedule == nil {
		return contentDomain.Schedule{}, false, nil
	}
	return *s.post.Schedule, true, nil
}

func (s *stubContentAPI) CreateSchedule(ctx context.Context, schedule contentDomain.Schedule) (contentDomain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	schedule.ID = "sched-new"
	s.post.Schedule = &schedule
	return schedule, nil
}

func (s *stubContentAPI) PatchSchedule(ctx context.Context, id string, patch contentDomain.SchedulePatch) (contentDomain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.RunAt != nil {
		s.post.Schedule.RunAt = *patch.RunAt
	}
	if patch.Timezone != nil {
		s.post.Schedule.Timezone = *patch.Timezone
	}
	return *s.post.Schedule, nil
}

func newCalendarTestApp(t *testing.T, api *stubContentAPI) (*fiber.App, *plannerApp.EventStore) {
	t.Helper()

	store := plannerApp.NewEventStore(api)
	coordinator := plannerApp.NewRescheduleCoordinator(store, api)

	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestCalendar(app, store, coordinator)
	return app, store
}

func TestCalendarEvents_PositionsAndLoads(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	app, _ := newCalendarTestApp(t, api)

	req := httptest.NewRequest(http.MethodGet, "/calendar/events?date=2024-06-01&view=month", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].(map[string]any)
	assert.Equal(t, "month", results["view"])
	assert.Equal(t, "June 2024", results["range_label"])
	events := results["events"].([]any)
	require.Len(t, events, 1)
	event := events[0].(map[string]any)
	assert.Equal(t, "event-post-1", event["id"])
}

func TestCalendarEvents_BadDateRejected(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	app, _ := newCalendarTestApp(t, api)

	req := httptest.NewRequest(http.MethodGet, "/calendar/events?date=June-1st", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendarNavigate_Next(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	app, store := newCalendarTestApp(t, api)
	store.SetReferenceDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	resp := postJSON(t, app, "/calendar/navigate", map[string]string{"direction": "next"})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].(map[string]any)
	assert.Equal(t, "July 2024", results["range_label"])
}

func TestCalendarNavigate_BadDirection(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	app, _ := newCalendarTestApp(t, api)

	resp := postJSON(t, app, "/calendar/navigate", map[string]string{"direction": "sideways"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendarSetView_Week(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	app, store := newCalendarTestApp(t, api)
	store.SetReferenceDate(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodPut, "/calendar/view", jsonBody(t, map[string]string{"view": "week"}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].(map[string]any)
	assert.Equal(t, "week", results["view"])
	assert.Equal(t, "Jun 9 - Jun 15, 2024", results["range_label"])
}

func TestCalendarReschedule_MonthDropKeepsTime(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC))
	app, store := newCalendarTestApp(t, api)

	store.SetReferenceDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.LoadEvents(context.Background()))

	resp := postJSON(t, app, "/calendar/reschedule", map[string]any{
		"event_id":    "event-post-1",
		"target_date": "2024-06-20",
	})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	result := body["results"].(map[string]any)
	assert.Equal(t, "2024-06-20T09:30:00Z", result["start"])

	api.mu.Lock()
	assert.Equal(t, time.Date(2024, 6, 20, 9, 30, 0, 0, time.UTC), api.post.Schedule.RunAt)
	api.mu.Unlock()
}

func TestCalendarReschedule_UnknownEvent(t *testing.T) {
	api := newStubContentAPI(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	app, _ := newCalendarTestApp(t, api)

	resp := postJSON(t, app, "/calendar/reschedule", map[string]any{
		"event_id":    "event-ghost",
		"target_date": "2024-06-20",
	})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND_ERROR", body["code"])
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}
