package middleware

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
)

type Permission string

const (
	PermViewProfiles     Permission = "view_profiles"
	PermViewHouseholds   Permission = "view_households"
	PermManageHouseholds Permission = "manage_households"
	PermCreateRequest    Permission = "create_request"
	PermReviewRequest    Permission = "review_request"
	PermManageCasework   Permission = "manage_casework"
	PermViewPlans        Permission = "view_plans"
	PermManagePlans      Permission = "manage_plans"
	PermViewEvents       Permission = "view_events"
	PermManageEvents     Permission = "manage_events"
	PermRegisterEvent    Permission = "register_event"
	PermViewServices     Permission = "view_services"
	PermManageServices   Permission = "manage_services"
	PermDonate           Permission = "donate"
	PermAdminDashboard   Permission = "view_admin_dashboard"
	PermCaseworkerStats  Permission = "view_caseworker_dashboard"
	PermRefugeeOverview  Permission = "view_refugee_overview"
	PermViewAuditLogs    Permission = "view_audit_logs"
	PermEntityHistory    Permission = "view_entity_history"
	PermExport           Permission = "export_caseload"
	PermDocuments        Permission = "manage_documents"
)

var staffPermissions = []Permission{
	PermViewProfiles, PermViewHouseholds, PermManageHouseholds, PermCreateRequest, PermReviewRequest,
	PermManageCasework, PermViewPlans, PermManagePlans, PermViewEvents, PermManageEvents,
	PermRegisterEvent, PermViewServices, PermCaseworkerStats, PermEntityHistory, PermExport,
	PermDocuments,
}

var permissions = map[domain.Role]map[Permission]bool{
	domain.RoleAdmin: grant(staffPermissions,
		PermManageServices, PermDonate, PermAdminDashboard, PermViewAuditLogs),
	domain.RoleCaseworker: grant(staffPermissions),
	domain.RoleNGO:        grant(staffPermissions),
	domain.RoleRefugee: grant(nil,
		PermViewHouseholds, PermCreateRequest, PermViewPlans, PermViewEvents, PermRegisterEvent,
		PermViewServices, PermRefugeeOverview, PermDocuments),
	domain.RoleDonor: grant(nil,
		PermCreateRequest, PermViewEvents, PermViewServices, PermDonate, PermDocuments),
}

func grant(base []Permission, extra ...Permission) map[Permission]bool {
	out := make(map[Permission]bool, len(base)+len(extra))
	for _, p := range base {
		out[p] = true
	}
	for _, p := range extra {
		out[p] = true
	}
	return out
}

func HasPermission(role domain.Role, permission Permission) bool {
	return permissions[role][permission]
}

func RequirePermission(permission Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := GetCurrentProfile(c)
		if profile == nil {
			return Unauthorized("Profile not found")
		}

		if !HasPermission(profile.Role, permission) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
