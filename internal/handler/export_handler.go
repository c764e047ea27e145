package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/export"
)

type ExportHandler struct {
	exportSvc export.Service
}

func NewExportHandler(exportSvc export.Service) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func (h *ExportHandler) Caseload(c *fiber.Ctx) error {
	data, err := h.exportSvc.Caseload(c.UserContext(), middleware.GetActor(c), c.Query("lang", "en"))
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("caseload_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(data)
}
