package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetAdminStats(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *DashboardHandler) Caseworker(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetCaseworkerStats(c.UserContext(), middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *DashboardHandler) Refugee(c *fiber.Ctx) error {
	overview, err := h.dashboardService.GetRefugeeOverview(c.UserContext(), middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(overview)
}
