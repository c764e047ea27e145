package handler

import (
	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/auth"
)

const ServiceKeyHeader = "X-Service-Key"

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var input domain.SignUpInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.SignUp(c.UserContext(), input, c.Get(ServiceKeyHeader), clientInfo(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var input domain.SignInInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.SignIn(c.UserContext(), input, clientInfo(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input refreshInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if input.RefreshToken == "" {
		return middleware.BadRequest("refresh_token is required")
	}

	tokens, err := h.authService.Refresh(c.UserContext(), input.RefreshToken, clientInfo(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	var input refreshInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.SignOut(c.UserContext(), input.RefreshToken); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	info, err := h.authService.Session(c.UserContext(), middleware.GetCurrentProfileID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(info)
}

func (h *AuthHandler) Landing(c *fiber.Ctx) error {
	profile := middleware.GetCurrentProfile(c)
	if profile == nil {
		return middleware.Unauthorized("Profile not found")
	}

	return c.JSON(fiber.Map{
		"role":  profile.Role,
		"route": profile.Role.LandingRoute(),
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.UserContext(), input.Token, input.NewPassword); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.BadRequest("Verification token is required")
	}

	if err := h.authService.VerifyEmail(c.UserContext(), token); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

func (h *AuthHandler) ResendVerificationEmail(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResendVerificationEmail(c.UserContext(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists and is not verified, a verification email has been sent",
	})
}
