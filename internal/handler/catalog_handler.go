package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/catalog"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalogService.ListServices(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": services})
}

func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var input domain.CreateServiceInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	svc, err := h.catalogService.CreateService(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteService(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) Donate(c *fiber.Ctx) error {
	var input domain.CreateDonationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	donation, err := h.catalogService.Donate(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(donation)
}

func (h *CatalogHandler) ListDonations(c *fiber.Ctx) error {
	result, err := h.catalogService.ListDonations(c.UserContext(), middleware.GetActor(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
