package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/service/auth"
)

const (
	ProfileContextKey = "profile"
	ActorContextKey   = "actor"
)

// AuthRequired validates the bearer token and loads the caller's profile so
// role and household changes take effect without re-issuing tokens.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		profile, err := authService.GetProfile(c.UserContext(), claims.ProfileID)
		if err != nil || profile == nil {
			return Unauthorized("Profile not found")
		}

		c.Locals(ProfileContextKey, profile)
		c.Locals(ActorContextKey, actorFor(c, profile))

		return c.Next()
	}
}

func actorFor(c *fiber.Ctx, profile *domain.Profile) domain.Actor {
	actor := domain.Actor{
		ProfileID:   profile.ID,
		Role:        profile.Role,
		HouseholdID: profile.HouseholdID,
	}
	if ip := GetClientIP(c); ip != "" {
		actor.IPAddress = &ip
	}
	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		actor.UserAgent = &ua
	}
	return actor
}

func GetCurrentProfile(c *fiber.Ctx) *domain.Profile {
	profile, ok := c.Locals(ProfileContextKey).(*domain.Profile)
	if !ok {
		return nil
	}
	return profile
}

func GetActor(c *fiber.Ctx) domain.Actor {
	actor, _ := c.Locals(ActorContextKey).(domain.Actor)
	return actor
}

func GetCurrentProfileID(c *fiber.Ctx) uuid.UUID {
	return GetActor(c).ProfileID
}
