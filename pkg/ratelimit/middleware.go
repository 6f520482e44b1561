package ratelimit

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware rejects requests over the limit with 429, keyed by client IP.
func Middleware(l *KeyedLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP(), time.Now()) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(1))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return c.Next()
	}
}
