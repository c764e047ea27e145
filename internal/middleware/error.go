package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/service/auth"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	TraceID string            `json:"trace_id,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// NewErrorHandler renders every error returned from a handler. Domain and
// validation errors are mapped to status codes; anything else is logged and
// reported as an internal error.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, resp := classify(err)
		resp.TraceID = uuid.New().String()[:8]

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("trace_id", resp.TraceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(resp)
	}
}

func classify(err error) (int, ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, ErrorResponse{Code: statusCode(fe.Code), Message: fe.Message}
	}

	var ve *validate.Error
	if errors.As(err, &ve) {
		return fiber.StatusUnprocessableEntity, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: ve.Error(),
			Details: ve.Fields,
		}
	}

	status := fiber.StatusInternalServerError
	message := "Internal server error"
	switch {
	case domain.NotFound(err), errors.Is(err, auth.ErrProfileNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case domain.Conflict(err), errors.Is(err, auth.ErrEmailExists):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, auth.ErrPrivilegedRole), errors.Is(err, auth.ErrEmailNotVerified):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrSelfReview), errors.Is(err, domain.ErrNotHouseholdMember),
		errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrVerificationTokenExpired):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		status, message = fiber.StatusUnauthorized, err.Error()
	}
	return status, ErrorResponse{Code: statusCode(status), Message: message}
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		if status < fiber.StatusInternalServerError {
			return "BAD_REQUEST"
		}
		return "INTERNAL_ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
