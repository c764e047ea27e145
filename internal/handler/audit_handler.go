package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/audit"
)

var auditEntities = map[string]bool{
	domain.EntityHousehold:  true,
	domain.EntityRequest:    true,
	domain.EntityAssessment: true,
	domain.EntityReferral:   true,
	domain.EntityCaseNote:   true,
	domain.EntityPlan:       true,
	domain.EntityGoal:       true,
	domain.EntityProfile:    true,
}

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	logs, err := h.auditService.GetRecentActivities(c.UserContext(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": logs})
}

func (h *AuditHandler) GetEntityHistory(c *fiber.Ctx) error {
	entity := c.Params("entity")
	if !auditEntities[entity] {
		return middleware.BadRequest("Unknown entity type")
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.auditService.GetEntityHistory(c.UserContext(), entity, id, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
