package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	approvalApp "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/application"
	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/core/config"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/cmdworker"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/ratelimit"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApprovalAPI struct {
	mu      sync.Mutex
	fail    error
	calls   []string
	preview contentDomain.PostPreview
}

func (s *stubApprovalAPI) record(op string) (contentDomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op)
	if s.fail != nil {
		return contentDomain.Post{}, s.fail
	}
	return contentDomain.Post{ID: "post-1", Title: "Launch teaser"}, nil
}

func (s *stubApprovalAPI) Approve(ctx context.Context, postID string) (contentDomain.Post, error) {
	return s.record("approve")
}

func (s *stubApprovalAPI) RequestChange(ctx context.Context, postID, feedback string) (contentDomain.Post, error) {
	return s.record("change")
}

func (s *stubApprovalAPI) Pause(ctx context.Context, postID string) (contentDomain.Post, error) {
	return s.record("pause")
}

func (s *stubApprovalAPI) Reject(ctx context.Context, postID string) (contentDomain.Post, error) {
	return s.record("reject")
}

func (s *stubApprovalAPI) GetPostPreview(ctx context.Context, postID string) (contentDomain.PostPreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return contentDomain.PostPreview{}, s.fail
	}
	return s.preview, nil
}

type stubTransport struct {
	mu   sync.Mutex
	sent []string
	fail error
}

func (s *stubTransport) Send(ctx context.Context, recipient, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, recipient+"|"+text)
	return nil
}

func (s *stubTransport) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newNotifyTestApp(t *testing.T, api *stubApprovalAPI, transport *stubTransport) (*fiber.App, *ratelimit.Limiter) {
	t.Helper()

	prev := config.Global
	config.Global = &config.Config{
		App:      config.AppConfig{Version: "v1.4.0"},
		Notifier: config.NotifierConfig{DefaultRecipient: "+15550001111"},
	}
	t.Cleanup(func() { config.Global = prev })

	limiter := ratelimit.NewLimiter(2*time.Millisecond, time.Millisecond)
	dispatcher := approvalApp.NewDispatcher(api, transport, limiter, nil, time.Millisecond)

	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestNotify(app, dispatcher, limiter)
	return app, limiter
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestNotifyApproval_Success(t *testing.T) {
	api := &stubApprovalAPI{preview: contentDomain.PostPreview{ID: "post-1", Title: "Launch teaser", BrandName: "Acme"}}
	transport := &stubTransport{}
	app, _ := newNotifyTestApp(t, api, transport)

	resp := postJSON(t, app, "/notify-approval", map[string]string{"postId": "post-1"})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, transport.count())
}

func TestNotifyApproval_MissingPostID(t *testing.T) {
	api := &stubApprovalAPI{}
	transport := &stubTransport{}
	app, _ := newNotifyTestApp(t, api, transport)

	resp := postJSON(t, app, "/notify-approval", map[string]string{"title": "no id"})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Zero(t, transport.count())
}

func TestNotifyApproval_PreviewFailure(t *testing.T) {
	api := &stubApprovalAPI{fail: errors.New("content api down")}
	transport := &stubTransport{}
	app, _ := newNotifyTestApp(t, api, transport)

	resp := postJSON(t, app, "/notify-approval", map[string]string{"postId": "post-1"})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "content api down")
}

func TestNotifyBulk_ReportsSentCount(t *testing.T) {
	api := &stubApprovalAPI{preview: contentDomain.PostPreview{ID: "post-1", Title: "Launch teaser"}}
	transport := &stubTransport{}
	app, _ := newNotifyTestApp(t, api, transport)

	resp := postJSON(t, app, "/notify-approval/bulk", map[string]any{
		"post_ids":   []string{"post-1", "post-2"},
		"recipients": []string{"+1", "+2"},
	})
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].(map[string]any)
	assert.EqualValues(t, 4, results["sent"])
	assert.EqualValues(t, 4, results["requested"])
	assert.Equal(t, 4, transport.count())
}

func TestNotifyBulk_EmptyListsRejected(t *testing.T) {
	api := &stubApprovalAPI{}
	transport := &stubTransport{}
	app, _ := newNotifyTestApp(t, api, transport)

	resp := postJSON(t, app, "/notify-approval/bulk", map[string]any{
		"post_ids":   []string{},
		"recipients": []string{"+1"},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, transport.count())
}

func TestNotifyStats_ReportsRecipient(t *testing.T) {
	api := &stubApprovalAPI{preview: contentDomain.PostPreview{ID: "post-1"}}
	transport := &stubTransport{}
	app, limiter := newNotifyTestApp(t, api, transport)

	require.NoError(t, limiter.WaitForRateLimit(context.Background(), "+15550001111"))

	req := httptest.NewRequest(http.MethodGet, "/notify-approval/stats?recipient=%2B15550001111", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].(map[string]any)
	assert.EqualValues(t, 1, results["tracked_recipients"])
	assert.Contains(t, results, "can_send_now")
	assert.Contains(t, results, "next_available")
}

func TestInbound_QueuesCommand(t *testing.T) {
	api := &stubApprovalAPI{}
	transport := &stubTransport{}

	limiter := ratelimit.NewLimiter(2*time.Millisecond, time.Millisecond)
	dispatcher := approvalApp.NewDispatcher(api, transport, limiter, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	pool := cmdworker.NewCommandWorkerPool(2, 16)
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})

	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestInbound(app, dispatcher, pool)

	resp := postJSON(t, app, "/transport/inbound", map[string]string{
		"sender": "+15550002222",
		"text":   "approve:post-1",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	assert.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.calls) == 1 && api.calls[0] == "approve"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestInbound_MissingFieldsRejected(t *testing.T) {
	api := &stubApprovalAPI{}
	transport := &stubTransport{}

	limiter := ratelimit.NewLimiter(2*time.Millisecond, time.Millisecond)
	dispatcher := approvalApp.NewDispatcher(api, transport, limiter, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	pool := cmdworker.NewCommandWorkerPool(1, 4)
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})

	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestInbound(app, dispatcher, pool)

	resp := postJSON(t, app, "/transport/inbound", map[string]string{"sender": "+1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
