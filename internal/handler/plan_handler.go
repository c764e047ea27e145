package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/plan"
)

type PlanHandler struct {
	planService plan.Service
}

func NewPlanHandler(planService plan.Service) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) List(c *fiber.Ctx) error {
	householdID, err := queryUUID(c, "household_id")
	if err != nil {
		return err
	}
	caseworkerID, err := queryUUID(c, "caseworker_id")
	if err != nil {
		return err
	}

	filter := domain.PlanFilter{HouseholdID: householdID, CaseworkerID: caseworkerID}
	if status := domain.PlanStatus(c.Query("status")); status != "" {
		filter.Status = &status
	}

	result, err := h.planService.List(c.UserContext(), middleware.GetActor(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PlanHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.planService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePlanInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	p, err := h.planService.Create(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdatePlanInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	p, err := h.planService.Update(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.planService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PlanHandler) ListGoals(c *fiber.Ctx) error {
	planID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	goals, err := h.planService.ListGoals(c.UserContext(), middleware.GetActor(c), planID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": goals})
}

func (h *PlanHandler) CreateGoal(c *fiber.Ctx) error {
	planID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.CreateGoalInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	goal, err := h.planService.CreateGoal(c.UserContext(), middleware.GetActor(c), planID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *PlanHandler) UpdateGoal(c *fiber.Ctx) error {
	goalID, err := paramUUID(c, "goalId")
	if err != nil {
		return err
	}

	var input domain.UpdateGoalInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	goal, err := h.planService.UpdateGoal(c.UserContext(), middleware.GetActor(c), goalID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(goal)
}

func (h *PlanHandler) DeleteGoal(c *fiber.Ctx) error {
	goalID, err := paramUUID(c, "goalId")
	if err != nil {
		return err
	}

	if err := h.planService.DeleteGoal(c.UserContext(), middleware.GetActor(c), goalID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
