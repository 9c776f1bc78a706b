package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	pkgUtils "github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookTransport_Send(t *testing.T) {
	var gotBody map[string]any
	var gotSignature string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Hub-Signature-256")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		sig, _ := pkgUtils.GetMessageDigestOrSignature(raw, []byte("topsecret"))
		assert.Equal(t, "sha256="+sig, gotSignature)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewWebhookTransport(WebhookConfig{URL: srv.URL, Secret: "topsecret"})
	require.NoError(t, tr.Send(context.Background(), "approver-1", "hello"))

	assert.Equal(t, "approver-1", gotBody["recipient"])
	assert.Equal(t, "hello", gotBody["text"])
	assert.NotEmpty(t, gotBody["sent_at"])
}

func TestWebhookTransport_RetriesThenFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewWebhookTransport(WebhookConfig{URL: srv.URL})
	err := tr.Send(context.Background(), "approver-1", "hello")
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWebhookTransport_RecoversOnRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewWebhookTransport(WebhookConfig{URL: srv.URL})
	assert.NoError(t, tr.Send(context.Background(), "approver-1", "hello"))
}
