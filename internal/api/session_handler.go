package api

import (
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token,omitempty"`
	CreatedAt string `json:"created_at"`
	// sessions end after this much inactivity
	IdleTimeout string `json:"idle_timeout,omitempty"`
}

// POST /api/sessions
func CreateSessionHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := d.Registry.Create()

		token, err := session.GenerateToken(d.SessionSecret, s.ID, d.now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Session token could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(SessionResponse{
			SessionID:   s.ID,
			Token:       token,
			CreatedAt:   s.CreatedAt.Format(time.RFC3339),
			IdleTimeout: d.SessionTTL.String(),
		})
	}
}

// GET /api/session
func GetSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		return c.JSON(SessionResponse{
			SessionID: s.ID,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}
}
