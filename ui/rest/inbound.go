package rest

import (
	"context"

	approvalApp "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/application"
	domainApproval "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/cmdworker"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/utils"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/validations"
	"github.com/gofiber/fiber/v2"
)

// inboundChannelID labels jobs coming through the HTTP gateway so the pool
// shards them apart from any future transport.
const inboundChannelID = "gateway"

type Inbound struct {
	Dispatcher *approvalApp.Dispatcher
	Pool       *cmdworker.CommandWorkerPool
}

// InitRestInbound accepts chat messages relayed by the messaging gateway.
// Messages are acknowledged immediately and processed on the worker pool;
// the reply travels back over the outbound transport, not this response.
func InitRestInbound(app fiber.Router, dispatcher *approvalApp.Dispatcher, pool *cmdworker.CommandWorkerPool) Inbound {
	handler := Inbound{Dispatcher: dispatcher, Pool: pool}

	app.Post("/transport/inbound", handler.ReceiveMessage)

	return handler
}

func (h *Inbound) ReceiveMessage(c *fiber.Ctx) error {
	var request domainApproval.InboundMessageRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateInboundMessage(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	sender, text := request.Sender, request.Text
	accepted := h.Pool.TryDispatch(cmdworker.CommandJob{
		ChannelID: inboundChannelID,
		ChatID:    sender,
		Handler: func(ctx context.Context) error {
			h.Dispatcher.HandleIncomingMessage(ctx, sender, text)
			return nil
		},
	})
	if !accepted {
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ResponseData{
			Status:  503,
			Code:    "QUEUE_FULL",
			Message: "Command queue is full, retry shortly",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(utils.ResponseData{
		Status:  202,
		Code:    "ACCEPTED",
		Message: "Message queued for processing",
	})
}
