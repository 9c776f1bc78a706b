package rest

import (
	"errors"
	"time"

	pkgError "github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/error"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/timegrid"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/utils"
	plannerApp "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/application"
	domainPlanner "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/validations"
	"github.com/gofiber/fiber/v2"
)

type Calendar struct {
	Store       *plannerApp.EventStore
	Coordinator *plannerApp.RescheduleCoordinator
}

func InitRestCalendar(app fiber.Router, store *plannerApp.EventStore, coordinator *plannerApp.RescheduleCoordinator) Calendar {
	handler := Calendar{Store: store, Coordinator: coordinator}

	group := app.Group("/calendar")
	group.Get("/events", handler.GetEvents)
	group.Get("/month", handler.GetMonth)
	group.Get("/week", handler.GetWeek)
	group.Get("/day", handler.GetDay)
	group.Post("/navigate", handler.Navigate)
	group.Put("/view", handler.SetView)
	group.Post("/reschedule", handler.Reschedule)

	return handler
}

// GetEvents reloads events for the current window and returns them. Optional
// date (YYYY-MM-DD) and view query params reposition the calendar first.
func (h *Calendar) GetEvents(c *fiber.Ctx) error {
	if dateStr := c.Query("date"); dateStr != "" {
		ref, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			panic(pkgError.ValidationError("date must be formatted as YYYY-MM-DD"))
		}
		h.Store.SetReferenceDate(ref)
	}
	if viewStr := c.Query("view"); viewStr != "" {
		h.Store.SetView(timegrid.ParseView(viewStr))
	}

	err := h.Store.LoadEvents(c.UserContext())
	utils.PanicIfNeeded(err)

	start, end := h.Store.Range()
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Calendar events retrieved",
		Results: map[string]any{
			"view":        h.Store.View(),
			"range_label": h.Store.RangeLabel(),
			"range_start": start.UTC().Format(time.RFC3339),
			"range_end":   end.UTC().Format(time.RFC3339),
			"events":      h.Store.Events(),
		},
	})
}

func (h *Calendar) GetMonth(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Month grid retrieved",
		Results: h.Store.Month(),
	})
}

func (h *Calendar) GetWeek(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Week grid retrieved",
		Results: h.Store.Week(),
	})
}

func (h *Calendar) GetDay(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Day grid retrieved",
		Results: h.Store.Day(),
	})
}

func (h *Calendar) Navigate(c *fiber.Ctx) error {
	var request domainPlanner.NavigateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateNavigate(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	switch request.Direction {
	case "next":
		h.Store.NavigateNext()
	case "previous":
		h.Store.NavigatePrevious()
	case "today":
		h.Store.NavigateToday()
	}

	err = h.Store.LoadEvents(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Calendar moved",
		Results: map[string]any{
			"view":        h.Store.View(),
			"range_label": h.Store.RangeLabel(),
		},
	})
}

func (h *Calendar) SetView(c *fiber.Ctx) error {
	var request domainPlanner.SetViewRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateSetView(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	h.Store.SetView(timegrid.ParseView(request.View))

	err = h.Store.LoadEvents(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Calendar view updated",
		Results: map[string]any{
			"view":        h.Store.View(),
			"range_label": h.Store.RangeLabel(),
		},
	})
}

func (h *Calendar) Reschedule(c *fiber.Ctx) error {
	var request domainPlanner.RescheduleEventRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateRescheduleEvent(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	targetDate, err := time.Parse("2006-01-02", request.TargetDate)
	utils.PanicIfNeeded(err)

	event, err := h.Coordinator.Reschedule(c.UserContext(), plannerApp.RescheduleRequest{
		EventID:    request.EventID,
		TargetDate: targetDate,
		TargetHour: request.TargetHour,
	})
	if err != nil {
		status := fiber.StatusInternalServerError
		code := "RESCHEDULE_FAILED"
		switch {
		case errors.Is(err, domainPlanner.ErrEventNotFound):
			status = fiber.StatusNotFound
			code = "NOT_FOUND_ERROR"
		case errors.Is(err, domainPlanner.ErrRescheduleInFlight):
			status = fiber.StatusConflict
			code = "RESCHEDULE_IN_FLIGHT"
		}
		return c.Status(status).JSON(utils.ResponseData{
			Status:  status,
			Code:    code,
			Message: err.Error(),
		})
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Event rescheduled",
		Results: event,
	})
}
