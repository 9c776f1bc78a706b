package rest

import (
	"fmt"
	"time"

	approvalApp "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/application"
	domainApproval "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/core/config"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/ratelimit"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/utils"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/validations"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Notify struct {
	Dispatcher *approvalApp.Dispatcher
	Limiter    *ratelimit.Limiter
}

func InitRestNotify(app fiber.Router, dispatcher *approvalApp.Dispatcher, limiter *ratelimit.Limiter) Notify {
	handler := Notify{Dispatcher: dispatcher, Limiter: limiter}

	app.Post("/notify-approval", handler.NotifyApproval)
	app.Post("/notify-approval/bulk", handler.NotifyBulk)
	app.Get("/notify-approval/stats", handler.GetStats)

	return handler
}

// NotifyApproval sends one approval card. The response shape is the contract
// the upstream scheduler expects: a success boolean rather than the usual
// envelope.
func (h *Notify) NotifyApproval(c *fiber.Ctx) error {
	var request domainApproval.NotifyApprovalRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err := validations.ValidateNotifyApproval(c.UserContext(), request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	recipient := request.Recipient
	if recipient == "" && config.Global != nil {
		recipient = config.Global.Notifier.DefaultRecipient
	}
	if recipient == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "no recipient given and no default recipient configured",
		})
	}

	if err := h.Dispatcher.NotifyApproval(c.UserContext(), request.PostID, recipient); err != nil {
		logrus.Errorf("[REST] Approval notification for post %s failed: %v", request.PostID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *Notify) NotifyBulk(c *fiber.Ctx) error {
	var request domainApproval.BulkNotifyRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateBulkNotify(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	sent := h.Dispatcher.SendBulkApprovalRequests(c.UserContext(), request.PostIDs, request.Recipients)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: fmt.Sprintf("Sent %d of %d approval requests", sent, len(request.PostIDs)*len(request.Recipients)),
		Results: map[string]any{
			"sent":      sent,
			"requested": len(request.PostIDs) * len(request.Recipients),
		},
	})
}

func (h *Notify) GetStats(c *fiber.Ctx) error {
	stats := h.Limiter.GetStats()

	results := map[string]any{
		"tracked_recipients":  stats.TrackedRecipients,
		"currently_throttled": stats.CurrentlyThrottled,
	}
	if recipient := c.Query("recipient"); recipient != "" {
		next := h.Limiter.NextAvailableTime(recipient)
		results["recipient"] = recipient
		results["can_send_now"] = h.Limiter.CanSendImmediately(recipient)
		results["next_available"] = next.UTC().Format(time.RFC3339)
		results["next_available_in"] = humanize.Time(next)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Notifier stats retrieved",
		Results: results,
	})
}
