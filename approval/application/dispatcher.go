package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	approvalDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/domain"
	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/infrastructure/valkey"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

const (
	apiCallTimeout = 30 * time.Second

	// Dedupe window for HTTP-triggered notifications of the same post.
	notifyLockTTL = 60 * time.Second
)

// Dispatcher reacts to inbound chat commands and emits approval
// notifications, pacing every outbound message per recipient through the
// rate limiter.
type Dispatcher struct {
	api       approvalDomain.IApprovalAPI
	transport approvalDomain.IMessageTransport
	limiter   *ratelimit.Limiter
	vk        *valkey.Client // optional, nil disables notify dedupe

	// Extra spacing on top of the limiter's own pacing during bulk blasts.
	bulkSendDelay time.Duration

	// lockFn overrides the valkey dedupe lock in tests.
	lockFn func(ctx context.Context, postID string) (bool, error)
}

func NewDispatcher(api approvalDomain.IApprovalAPI, transport approvalDomain.IMessageTransport, limiter *ratelimit.Limiter, vk *valkey.Client, bulkSendDelay time.Duration) *Dispatcher {
	if bulkSendDelay <= 0 {
		bulkSendDelay = 2 * time.Second
	}
	return &Dispatcher{
		api:           api,
		transport:     transport,
		limiter:       limiter,
		vk:            vk,
		bulkSendDelay: bulkSendDelay,
	}
}

// HandleIncomingMessage processes one chat message from recipient. Errors
// from the approval API or the transport never escape: they are logged and
// surfaced to the sender as a chat reply, so a bad command cannot stall the
// transport's message loop.
func (d *Dispatcher) HandleIncomingMessage(ctx context.Context, recipient string, text string) {
	cmd := approvalDomain.ParseCommand(text)

	if cmd.Kind == approvalDomain.CommandUnknown {
		logrus.Debugf("[DISPATCHER] Ignoring non-command message from %s", recipient)
		return
	}

	if cmd.PostID == "" {
		d.reply(ctx, recipient, "⚠️ Missing post id. Use approve:<postId>, change:<postId>:<feedback>, pause:<postId> or reject:<postId>.")
		return
	}

	// change: without feedback asks for it instead of hitting the API.
	if cmd.Kind == approvalDomain.CommandRequestChange && cmd.Feedback == "" {
		d.reply(ctx, recipient, fmt.Sprintf("✏️ What should change on post %s? Reply with change:%s:<your feedback>.", cmd.PostID, cmd.PostID))
		return
	}

	apiCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
	defer cancel()

	var (
		post   contentDomain.Post
		err    error
		action string
	)
	switch cmd.Kind {
	case approvalDomain.CommandApprove:
		action = "approved"
		post, err = d.api.Approve(apiCtx, cmd.PostID)
	case approvalDomain.CommandRequestChange:
		action = "sent back for changes"
		post, err = d.api.RequestChange(apiCtx, cmd.PostID, cmd.Feedback)
	case approvalDomain.CommandPause:
		action = "paused"
		post, err = d.api.Pause(apiCtx, cmd.PostID)
	case approvalDomain.CommandReject:
		action = "rejected"
		post, err = d.api.Reject(apiCtx, cmd.PostID)
	}

	if err != nil {
		logrus.WithError(err).Errorf("[DISPATCHER] %s command failed for post %s", cmd.Kind, cmd.PostID)
		d.reply(ctx, recipient, fmt.Sprintf("❌ Could not process %s for post %s: %v", cmd.Kind, cmd.PostID, err))
		return
	}

	d.reply(ctx, recipient, fmt.Sprintf("✅ Post *%s* %s. Status: %s.", post.Title, action, post.Status))
}

// reply paces through the limiter and sends. Send failures are logged only.
func (d *Dispatcher) reply(ctx context.Context, recipient string, text string) {
	if err := d.limiter.WaitForRateLimit(ctx, recipient); err != nil {
		logrus.WithError(err).Warnf("[DISPATCHER] Reply to %s abandoned while throttled", recipient)
		return
	}
	if err := d.transport.Send(ctx, recipient, text); err != nil {
		logrus.WithError(err).Errorf("[DISPATCHER] Failed to send reply to %s", recipient)
	}
}

// SendApprovalRequest fetches the post preview, formats the approval card
// and sends it to recipient, rate-limited. Unlike the command reply paths
// this propagates errors: batch and administrative callers need to know.
func (d *Dispatcher) SendApprovalRequest(ctx context.Context, postID string, recipient string) error {
	apiCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
	defer cancel()

	preview, err := d.api.GetPostPreview(apiCtx, postID)
	if err != nil {
		return fmt.Errorf("fetch preview for post %s: %w", postID, err)
	}

	if err := d.limiter.WaitForRateLimit(ctx, recipient); err != nil {
		return err
	}
	if err := d.transport.Send(ctx, recipient, FormatApprovalCard(preview)); err != nil {
		return fmt.Errorf("send approval request to %s: %w", recipient, err)
	}

	logrus.Infof("[DISPATCHER] Approval request for post %s sent to %s", postID, recipient)
	return nil
}

// SendBulkApprovalRequests sends the full cross-product of posts and
// recipients sequentially, inserting an extra fixed delay after each send on
// top of the limiter's pacing. Per-send failures are logged and the batch
// continues; the number of successful sends is returned.
func (d *Dispatcher) SendBulkApprovalRequests(ctx context.Context, postIDs []string, recipients []string) int {
	sent := 0
	for _, postID := range postIDs {
		for _, recipient := range recipients {
			if err := d.SendApprovalRequest(ctx, postID, recipient); err != nil {
				logrus.WithError(err).Errorf("[DISPATCHER] Bulk send failed for post %s -> %s", postID, recipient)
			} else {
				sent++
			}

			t := time.NewTimer(d.bulkSendDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				logrus.Warnf("[DISPATCHER] Bulk send cancelled after %d messages", sent)
				return sent
			case <-t.C:
			}
		}
	}
	logrus.Infof("[DISPATCHER] Bulk send finished: %d/%d messages", sent, len(postIDs)*len(recipients))
	return sent
}

// NotifyApproval handles an HTTP-triggered approval notification for one
// post. When valkey is available, repeated triggers for the same post inside
// the dedupe window are dropped; without valkey every trigger sends.
func (d *Dispatcher) NotifyApproval(ctx context.Context, postID string, recipient string) error {
	acquire := d.lockFn
	if acquire == nil && d.vk != nil && d.vk.IsConnected() {
		acquire = func(ctx context.Context, postID string) (bool, error) {
			return d.vk.AcquireLock(ctx, d.vk.Key("notify", "lock", postID), notifyLockTTL)
		}
	}
	if acquire != nil {
		acquired, err := acquire(ctx, postID)
		if err != nil {
			// Fail open: a valkey outage must not mute notifications.
			logrus.WithError(err).Warn("[DISPATCHER] Dedupe lock check failed, sending anyway")
		} else if !acquired {
			logrus.Infof("[DISPATCHER] Duplicate notification for post %s suppressed", postID)
			return nil
		}
	}
	return d.SendApprovalRequest(ctx, postID, recipient)
}

// FormatApprovalCard renders the chat card for an approval request.
func FormatApprovalCard(preview contentDomain.PostPreview) string {
	var sb strings.Builder
	sb.WriteString("📋 *Approval needed*\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", preview.Title))
	if preview.BrandName != "" {
		sb.WriteString(fmt.Sprintf("Brand: %s\n", preview.BrandName))
	}
	sb.WriteString(fmt.Sprintf("Status: %s\n", preview.Status))
	if preview.Schedule != nil {
		sb.WriteString(fmt.Sprintf("Scheduled: %s\n", preview.Schedule.RunAt.Format("Mon, 02 Jan 2006 15:04 MST")))
	}
	if len(preview.Content.Platforms) > 0 {
		sb.WriteString(fmt.Sprintf("Platforms: %s\n", strings.Join(preview.Content.Platforms, ", ")))
	}
	if len(preview.Content.Hashtags) > 0 {
		sb.WriteString(fmt.Sprintf("Hashtags: %s\n", strings.Join(preview.Content.Hashtags, " ")))
	}
	if preview.Content.Hook != "" {
		sb.WriteString(fmt.Sprintf("\n_%s_\n", preview.Content.Hook))
	}
	if preview.Content.Body != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", preview.Content.Body))
	}
	sb.WriteString(fmt.Sprintf("\nReply with:\n- approve:%s\n- change:%s:<feedback>\n- reject:%s", preview.ID, preview.ID, preview.ID))
	return sb.String()
}
