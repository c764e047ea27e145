package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ClientIPContextKey = "client_ip"

// RequestInfo resolves the caller's address behind Cloudflare or a proxy.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(ClientIPContextKey, clientIP(c))
		return c.Next()
	}
}

func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if ip := c.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return c.IP()
}

// GetClientIP returns the address stored by RequestInfo, or the socket
// address when the middleware is not installed.
func GetClientIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals(ClientIPContextKey).(string); ok && ip != "" {
		return ip
	}
	return c.IP()
}
