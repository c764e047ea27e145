package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/household"
)

type HouseholdHandler struct {
	householdService household.Service
}

func NewHouseholdHandler(householdService household.Service) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

func (h *HouseholdHandler) List(c *fiber.Ctx) error {
	caseworkerID, err := queryUUID(c, "caseworker_id")
	if err != nil {
		return err
	}

	filter := domain.HouseholdFilter{CaseworkerID: caseworkerID}
	if status := domain.HouseholdStatus(c.Query("status")); status != "" {
		if status != domain.HouseholdActive && status != domain.HouseholdClosed {
			return middleware.BadRequest("Invalid status")
		}
		filter.Status = &status
	}

	result, err := h.householdService.List(c.UserContext(), middleware.GetActor(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *HouseholdHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.householdService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *HouseholdHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateHouseholdInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	hh, err := h.householdService.Create(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(hh)
}

func (h *HouseholdHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateHouseholdInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	hh, err := h.householdService.Update(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(hh)
}

func (h *HouseholdHandler) AssignCaseworker(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.AssignCaseworkerInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	hh, err := h.householdService.AssignCaseworker(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(hh)
}

func (h *HouseholdHandler) Close(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	hh, err := h.householdService.Close(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(hh)
}

func (h *HouseholdHandler) AddMember(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.AddMemberInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	member, err := h.householdService.AddMember(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *HouseholdHandler) SetHead(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.SetHeadInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	hh, err := h.householdService.SetHead(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(hh)
}
