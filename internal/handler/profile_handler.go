package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	householdID, err := queryUUID(c, "household_id")
	if err != nil {
		return err
	}

	filter := domain.ProfileFilter{
		HouseholdID: householdID,
		Search:      c.Query("search"),
	}
	if role := domain.Role(c.Query("role")); role != "" {
		if !role.IsValid() {
			return middleware.BadRequest("Invalid role")
		}
		filter.Role = &role
	}

	result, err := h.profileService.List(c.UserContext(), middleware.GetActor(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(middleware.GetCurrentProfile(c))
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.profileService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	p, err := h.profileService.Update(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	actor := middleware.GetActor(c)
	p, err := h.profileService.Update(c.UserContext(), actor, actor.ProfileID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}
