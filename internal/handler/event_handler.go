package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/event"
)

type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	filter := domain.EventFilter{PublishedOnly: c.QueryBool("published_only")}
	if c.QueryBool("upcoming") {
		today := domain.Today()
		filter.From = &today
	}
	if status := domain.EventStatus(c.Query("status")); status != "" {
		filter.Status = &status
	}

	result, err := h.eventService.List(c.UserContext(), middleware.GetActor(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.eventService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(e)
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateEventInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	e, err := h.eventService.Create(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateEventInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	e, err := h.eventService.Update(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(e)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) Register(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.RegisterParticipantInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	p, err := h.eventService.Register(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *EventHandler) ListParticipants(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	participants, err := h.eventService.ListParticipants(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": participants})
}

func (h *EventHandler) MarkAttendance(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	householdID, err := paramUUID(c, "householdId")
	if err != nil {
		return err
	}

	var input domain.AttendanceInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	p, err := h.eventService.MarkAttendance(c.UserContext(), middleware.GetActor(c), id, householdID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}
