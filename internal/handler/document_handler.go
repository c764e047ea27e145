package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/document"
)

type DocumentHandler struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	profileID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	mimeType := file.Header.Get(fiber.HeaderContentType)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	doc, err := h.documentService.Upload(c.UserContext(), middleware.GetActor(c), profileID, document.Upload{
		Kind:     c.FormValue("kind"),
		FileName: file.Filename,
		FileSize: file.Size,
		MimeType: mimeType,
		Content:  reader,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	profileID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	docs, err := h.documentService.List(c.UserContext(), middleware.GetActor(c), profileID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": docs})
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.documentService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.documentService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
