package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/service/auth"
)

// stubAuth accepts tokens of the form "token-<uuid>".
type stubAuth struct {
	auth.Service
	profiles map[uuid.UUID]*domain.Profile
}

func (s *stubAuth) ValidateAccessToken(token string) (*auth.Claims, error) {
	var raw string
	if _, err := fmt.Sscanf(token, "token-%s", &raw); err != nil {
		return nil, auth.ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{ProfileID: id}, nil
}

func (s *stubAuth) GetProfile(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, auth.ErrProfileNotFound
	}
	return p, nil
}

func newApp(authSvc auth.Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
	api := app.Group("/api", APIKey("public-key"), AuthRequired(authSvc))
	api.Get("/audit", RequirePermission(PermViewAuditLogs), func(c *fiber.Ctx) error {
		return c.SendString(string(GetActor(c).Role))
	})
	api.Get("/me", func(c *fiber.Ctx) error {
		actor := GetActor(c)
		return c.JSON(fiber.Map{"id": actor.ProfileID, "ua": *actor.UserAgent})
	})
	return app
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAuthChain(t *testing.T) {
	admin := &domain.Profile{ID: uuid.New(), Role: domain.RoleAdmin}
	refugee := &domain.Profile{ID: uuid.New(), Role: domain.RoleRefugee}
	app := newApp(&stubAuth{profiles: map[uuid.UUID]*domain.Profile{admin.ID: admin, refugee.ID: refugee}})

	request := func(path, apiKey string, profile *domain.Profile) *http.Response {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if apiKey != "" {
			req.Header.Set(APIKeyHeader, apiKey)
		}
		if profile != nil {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer token-"+profile.ID.String())
		}
		req.Header.Set(fiber.HeaderUserAgent, "portal-test")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("missing api key", func(t *testing.T) {
		resp := request("/api/me", "", admin)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)
	})

	t.Run("missing bearer token", func(t *testing.T) {
		resp := request("/api/me", "public-key", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown profile", func(t *testing.T) {
		resp := request("/api/me", "public-key", &domain.Profile{ID: uuid.New()})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("actor carries request info", func(t *testing.T) {
		resp := request("/api/me", "public-key", refugee)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			ID uuid.UUID `json:"id"`
			UA string    `json:"ua"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, refugee.ID, body.ID)
		assert.Equal(t, "portal-test", body.UA)
	})

	t.Run("permission matrix", func(t *testing.T) {
		resp := request("/api/audit", "public-key", refugee)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)

		resp = request("/api/audit", "public-key", admin)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(domain.RoleCaseworker, PermReviewRequest))
	assert.True(t, HasPermission(domain.RoleNGO, PermManageCasework))
	assert.False(t, HasPermission(domain.RoleCaseworker, PermManageServices))
	assert.True(t, HasPermission(domain.RoleAdmin, PermManageServices))
	assert.True(t, HasPermission(domain.RoleRefugee, PermRegisterEvent))
	assert.False(t, HasPermission(domain.RoleRefugee, PermReviewRequest))
	assert.True(t, HasPermission(domain.RoleDonor, PermDonate))
	assert.False(t, HasPermission(domain.RoleDonor, PermViewHouseholds))
	assert.False(t, HasPermission(domain.Role("ghost"), PermViewEvents))
}

func TestDashboardPermissions(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleCaseworker, domain.RoleNGO, domain.RoleRefugee, domain.RoleDonor} {
		assert.Equal(t, role == domain.RoleAdmin, HasPermission(role, PermAdminDashboard), role)
		assert.Equal(t, role.IsStaff(), HasPermission(role, PermCaseworkerStats), role)
		assert.Equal(t, role == domain.RoleRefugee, HasPermission(role, PermRefugeeOverview), role)
	}
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "bad id"), fiber.StatusBadRequest, "BAD_REQUEST"},
		{"not found", fmt.Errorf("load: %w", domain.ErrHouseholdNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"transition", domain.ErrInvalidTransition, fiber.StatusConflict, "CONFLICT"},
		{"capacity", domain.ErrEventFull, fiber.StatusConflict, "CONFLICT"},
		{"forbidden", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"privileged role", auth.ErrPrivilegedRole, fiber.StatusForbidden, "FORBIDDEN"},
		{"credentials", auth.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"validation", &validate.Error{Fields: map[string]string{"status": "status must be one of approved rejected"}}, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"unknown", errors.New("connection reset"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.TraceID)
			if tc.code == "VALIDATION_ERROR" {
				assert.Contains(t, body.Details, "status")
			}
			if tc.code == "INTERNAL_ERROR" {
				assert.Equal(t, "Internal server error", body.Message)
			}
		})
	}
}

func TestRequestInfoPrefersForwardedAddress(t *testing.T) {
	app := fiber.New()
	app.Use(RequestInfo())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetClientIP(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113.7, 10.0.0.1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf [64]byte
	n, _ := resp.Body.Read(buf[:])
	assert.Equal(t, "203.0.113.7", string(buf[:n]))
}
