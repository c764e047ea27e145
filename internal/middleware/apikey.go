package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const APIKeyHeader = "apikey"

// APIKey rejects requests that do not carry the public API key.
func APIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(APIKeyHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return Unauthorized("Invalid API key")
		}
		return c.Next()
	}
}
