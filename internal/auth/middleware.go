package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Middleware guards the REST surface with a standard bearer header.
// The websocket endpoint does its own query-token verification because
// browser websocket clients cannot set custom headers.
func Middleware(v *Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization header"})
		}
		id, err := v.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Middleware.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}

// RequireRole rejects callers whose token role is not in allowed.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFromCtx(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing identity"})
		}
		for _, role := range allowed {
			if id.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
	}
}
