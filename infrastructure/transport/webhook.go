// Package transport carries outbound chat messages to the external
// messaging gateway. The actual WhatsApp (or other channel) connection lives
// outside this service; we only POST to its webhook.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgError "github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/error"
	pkgUtils "github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/utils"
	"github.com/sirupsen/logrus"
)

// WebhookConfig describes the outbound gateway endpoint.
type WebhookConfig struct {
	URL                string
	Secret             string
	InsecureSkipVerify bool
}

// WebhookTransport implements approval/domain.IMessageTransport by POSTing
// each message as JSON to the configured webhook, signing the payload when a
// secret is set.
type WebhookTransport struct {
	cfg    WebhookConfig
	client *http.Client
}

func NewWebhookTransport(cfg WebhookConfig) *WebhookTransport {
	return &WebhookTransport{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
			},
		},
	}
}

// Send delivers one message, retrying transient failures with exponential
// backoff. The rate limiter upstream already spaces calls out, so the retry
// loop is short.
func (t *WebhookTransport) Send(ctx context.Context, recipient string, text string) error {
	payload := map[string]any{
		"recipient": recipient,
		"text":      text,
		"sent_at":   time.Now().UTC().Format(time.RFC3339),
	}

	postBody, err := json.Marshal(payload)
	if err != nil {
		return pkgError.WebhookError(fmt.Sprintf("Failed to marshal body: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL, nil)
	if err != nil {
		return pkgError.WebhookError(fmt.Sprintf("error when create http object %v", err))
	}

	req.Header.Set("Content-Type", "application/json")
	if t.cfg.Secret != "" {
		signature, err := pkgUtils.GetMessageDigestOrSignature(postBody, []byte(t.cfg.Secret))
		if err != nil {
			return pkgError.WebhookError(fmt.Sprintf("error when create signature %v", err))
		}
		req.Header.Set("X-Hub-Signature-256", fmt.Sprintf("sha256=%s", signature))
	}

	var attempt int
	maxAttempts := 3
	sleepDuration := 1 * time.Second

	for attempt = 0; attempt < maxAttempts; attempt++ {
		req.Body = io.NopCloser(bytes.NewBuffer(postBody))
		resp, err := t.client.Do(req)
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				logrus.Debugf("[TRANSPORT] Message to %s delivered on attempt %d", recipient, attempt+1)
				return nil
			}
			err = fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		logrus.Warnf("[TRANSPORT] Attempt %d to deliver to %s failed: %v", attempt+1, recipient, err)
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleepDuration):
			}
			sleepDuration *= 2
		}
	}

	return pkgError.WebhookError(fmt.Sprintf("error when submit webhook after %d attempts", attempt))
}
