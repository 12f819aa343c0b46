package audit

import (
	"strconv"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	SessionID   string             `json:"session_id"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"before_data"`
	AfterData   string             `json:"after_data"`
}

// GET /api/audit-logs?entity_type=order&entity_id=ORD-001&limit=50
// Sessions only see their own trail; sessionID resolves it from the request.
func ListAuditLogsHandler(rec Recorder, sessionID func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{
			SessionID:  sessionID(c),
			EntityType: c.Query("entity_type"),
			EntityID:   c.Query("entity_id"),
			Limit:      100,
		}
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive number")
			}
			f.Limit = min(n, 500)
		}

		logs, err := rec.List(c.UserContext(), f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				SessionID:   l.SessionID,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
			})
		}
		return c.JSON(res)
	}
}
