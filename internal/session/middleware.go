package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const CtxSessionKey = "session"

func Middleware(secret string, reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization format must be 'Bearer <token>'")
		}

		claims, err := ParseToken(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired session token")
		}

		s, ok := reg.Get(claims.SessionID)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Session expired, start a new one")
		}

		c.Locals(CtxSessionKey, s)
		return c.Next()
	}
}

// FromCtx returns the session stored by Middleware.
func FromCtx(c *fiber.Ctx) *Session {
	s, _ := c.Locals(CtxSessionKey).(*Session)
	return s
}

// IDFromCtx is FromCtx reduced to the id, empty when unauthenticated.
func IDFromCtx(c *fiber.Ctx) string {
	if s := FromCtx(c); s != nil {
		return s.ID
	}
	return ""
}
