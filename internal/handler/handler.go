package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service"
	"refugee-portal/internal/service/auth"
)

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Household    *HouseholdHandler
	Request      *RequestHandler
	Casework     *CaseworkHandler
	Plan         *PlanHandler
	Event        *EventHandler
	Catalog      *CatalogHandler
	Dashboard    *DashboardHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Document     *DocumentHandler
	Export       *ExportHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Profile:      NewProfileHandler(services.Profile),
		Household:    NewHouseholdHandler(services.Household),
		Request:      NewRequestHandler(services.Request),
		Casework:     NewCaseworkHandler(services.Assessment, services.Referral, services.CaseNote),
		Plan:         NewPlanHandler(services.Plan),
		Event:        NewEventHandler(services.Event),
		Catalog:      NewCatalogHandler(services.Catalog),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
		Document:     NewDocumentHandler(services.Document),
		Export:       NewExportHandler(services.Export),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", domain.DefaultPageSize); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

func queryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, middleware.BadRequest("Invalid " + name)
	}
	return &id, nil
}

func queryString(c *fiber.Ctx, name string) *string {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		return &v
	}
	return nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}

func clientInfo(c *fiber.Ctx) auth.ClientInfo {
	var info auth.ClientInfo
	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		info.UserAgent = &ua
	}
	if ip := middleware.GetClientIP(c); ip != "" {
		info.IPAddress = &ip
	}
	return info
}
