package contentapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsClient_ListPosts(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/posts", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]contentDomain.Post{
			{ID: "p1", Title: "First"},
			{ID: "p2", Title: "Second"},
		})
	}))
	defer srv.Close()

	c := NewPostsClient(Config{PostsURL: srv.URL, APIToken: "secret"})
	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestPostsClient_PatchPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/posts/p1", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "SCHEDULED", patch["status"])

		_ = json.NewEncoder(w).Encode(contentDomain.Post{ID: "p1", Status: contentDomain.PostStatusScheduled})
	}))
	defer srv.Close()

	c := NewPostsClient(Config{PostsURL: srv.URL})
	status := contentDomain.PostStatusScheduled
	post, err := c.PatchPost(context.Background(), "p1", contentDomain.PostPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, contentDomain.PostStatusScheduled, post.Status)
}

func TestPostsClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewPostsClient(Config{PostsURL: srv.URL})
	_, err := c.GetPost(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestSchedulesClient_GetScheduleByPost_Found(t *testing.T) {
	runAt := time.Date(2024, time.June, 15, 14, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedules/post/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(contentDomain.Schedule{ID: "sched-1", PostID: "p1", RunAt: runAt})
	}))
	defer srv.Close()

	c := NewSchedulesClient(Config{SchedulesURL: srv.URL})
	sched, found, err := c.GetScheduleByPost(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "sched-1", sched.ID)
	assert.True(t, sched.RunAt.Equal(runAt))
}

func TestSchedulesClient_GetScheduleByPost_NotFoundIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewSchedulesClient(Config{SchedulesURL: srv.URL})
	_, found, err := c.GetScheduleByPost(context.Background(), "p1")
	require.NoError(t, err, "404 means absent, not failed")
	assert.False(t, found)
}

func TestSchedulesClient_GetScheduleByPost_OtherErrorsPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewSchedulesClient(Config{SchedulesURL: srv.URL})
	_, found, err := c.GetScheduleByPost(context.Background(), "p1")
	require.Error(t, err)
	assert.False(t, found)
}

func TestSchedulesClient_CreateSchedule(t *testing.T) {
	runAt := time.Date(2024, time.June, 15, 14, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/schedules", r.URL.Path)

		var body contentDomain.Schedule
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body.PostID)
		assert.Equal(t, "UTC", body.Timezone)

		body.ID = "sched-new"
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewSchedulesClient(Config{SchedulesURL: srv.URL})
	created, err := c.CreateSchedule(context.Background(), contentDomain.Schedule{
		PostID:   "p1",
		RunAt:    runAt,
		Timezone: "UTC",
		Status:   contentDomain.ScheduleStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "sched-new", created.ID)
}

func TestSchedulesClient_PatchSchedule(t *testing.T) {
	runAt := time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/schedules/sched-1", r.URL.Path)

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Contains(t, patch, "run_at")

		_ = json.NewEncoder(w).Encode(contentDomain.Schedule{ID: "sched-1", RunAt: runAt})
	}))
	defer srv.Close()

	c := NewSchedulesClient(Config{SchedulesURL: srv.URL})
	updated, err := c.PatchSchedule(context.Background(), "sched-1", contentDomain.SchedulePatch{RunAt: &runAt})
	require.NoError(t, err)
	assert.True(t, updated.RunAt.Equal(runAt))
}

func TestApprovalClient_Routes(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		_ = json.NewEncoder(w).Encode(contentDomain.Post{ID: "p1", Title: "Post", Status: contentDomain.PostStatusScheduled})
	}))
	defer srv.Close()

	c := NewApprovalClient(Config{ApprovalURL: srv.URL})
	ctx := context.Background()

	_, err := c.Approve(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "/approvals/approve", gotPath)
	assert.Equal(t, "p1", gotBody["postId"])

	_, err = c.RequestChange(ctx, "p1", "fix headline")
	require.NoError(t, err)
	assert.Equal(t, "/approvals/request-change", gotPath)
	assert.Equal(t, "fix headline", gotBody["feedback"])

	_, err = c.Pause(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "/approvals/pause", gotPath)

	_, err = c.Reject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "/approvals/reject/p1", gotPath, "reject id travels in the path")
}

func TestApprovalClient_GetPostPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts/p1/preview", r.URL.Path)
		_ = json.NewEncoder(w).Encode(contentDomain.PostPreview{ID: "p1", Title: "Post", BrandName: "Acme"})
	}))
	defer srv.Close()

	c := NewApprovalClient(Config{ApprovalURL: srv.URL})
	preview, err := c.GetPostPreview(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", preview.BrandName)
}
