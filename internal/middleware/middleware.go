// Package middleware holds the cross-cutting Fiber handlers: request
// logging, panic recovery and upstream identity extraction.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// UserIDKey is the locals key holding the caller's user id.
const UserIDKey = "userID"

// userIDHeader is set by the fronting auth proxy. Authentication itself is
// an external collaborator; the server only consumes the resolved identity.
const userIDHeader = "X-User-ID"

// Logging returns the request logger used by the server.
func Logging() fiber.Handler {
	return logger.New()
}

// Recovery converts handler panics into 500 responses.
func Recovery() fiber.Handler {
	return recover.New()
}

// Identity copies the upstream-resolved user id into request locals.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get(userIDHeader); id != "" {
			c.Locals(UserIDKey, id)
		}
		return c.Next()
	}
}

// RequireUser guards endpoints that need an authenticated caller.
func RequireUser(c *fiber.Ctx) error {
	if UserID(c) == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return c.Next()
}

// UserID returns the caller's user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
