package api

import (
	"fmt"

	"github.com/JawwadIrshad/Resturant-App/internal/audit"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/session"
	"github.com/JawwadIrshad/Resturant-App/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GET /api/stock?q=flour&filter=low&category=Dry%20Goods
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)

		filter := stock.Filter(c.Query("filter", string(stock.FilterAll)))
		switch filter {
		case stock.FilterAll, stock.FilterLow, stock.FilterOut:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "filter must be all, low or out")
		}

		items := s.Stock.Search(c.Query("q"), filter)
		if cat := c.Query("category"); cat != "" {
			kept := items[:0]
			for _, it := range items {
				if it.Category == cat {
					kept = append(kept, it)
				}
			}
			items = kept
		}
		return c.JSON(toStockItemResponses(items))
	}
}

// GET /api/stock/:id
func GetStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		it, ok := session.FromCtx(c).Stock.Get(c.Params("id"))
		if !ok {
			return httpError(stock.ErrNotFound)
		}
		return c.JSON(toStockItemResponse(it))
	}
}

type CreateStockItemRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	MinThreshold float64 `json:"min_threshold"`
	MaxThreshold float64 `json:"max_threshold"`
	Supplier     string  `json:"supplier"`
	CostPerUnit  float64 `json:"cost_per_unit"`
}

// POST /api/stock
func CreateStockItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		it, err := session.FromCtx(c).Stock.Add(models.StockItem{
			Name:         body.Name,
			Category:     body.Category,
			Quantity:     body.Quantity,
			Unit:         body.Unit,
			MinThreshold: body.MinThreshold,
			MaxThreshold: body.MaxThreshold,
			Supplier:     body.Supplier,
			CostPerUnit:  decimal.NewFromFloat(body.CostPerUnit),
		})
		if err != nil {
			return httpError(err)
		}

		res := toStockItemResponse(it)
		d.record(c, audit.LogOptions{
			EntityType:  "stock_item",
			EntityID:    it.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stock item %s added", it.Name),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

type UpdateStockItemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Quantity     *float64 `json:"quantity"`
	Unit         *string  `json:"unit"`
	MinThreshold *float64 `json:"min_threshold"`
	MaxThreshold *float64 `json:"max_threshold"`
	Supplier     *string  `json:"supplier"`
	CostPerUnit  *float64 `json:"cost_per_unit"`
}

// PUT /api/stock/:id
func UpdateStockItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		p := stock.Patch{
			Name:         body.Name,
			Category:     body.Category,
			Quantity:     body.Quantity,
			Unit:         body.Unit,
			MinThreshold: body.MinThreshold,
			MaxThreshold: body.MaxThreshold,
			Supplier:     body.Supplier,
		}
		if body.CostPerUnit != nil {
			cost := decimal.NewFromFloat(*body.CostPerUnit)
			p.CostPerUnit = &cost
		}

		return changeStockItem(c, d, func(l *stock.Ledger, id string) (models.StockItem, error) {
			return l.Update(id, p)
		}, "Stock item %s updated")
	}
}

type AmountRequest struct {
	Quantity *float64 `json:"quantity"`
	Amount   *float64 `json:"amount"`
}

// PUT /api/stock/:id/quantity
func UpdateStockQuantityHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AmountRequest
		if err := c.BodyParser(&body); err != nil || body.Quantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "quantity is required")
		}
		return changeStockItem(c, d, func(l *stock.Ledger, id string) (models.StockItem, error) {
			return l.UpdateQuantity(id, *body.Quantity)
		}, "Quantity of %s changed")
	}
}

// POST /api/stock/:id/restock
func RestockItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AmountRequest
		if err := c.BodyParser(&body); err != nil || body.Amount == nil {
			return fiber.NewError(fiber.StatusBadRequest, "amount is required")
		}
		return changeStockItem(c, d, func(l *stock.Ledger, id string) (models.StockItem, error) {
			return l.Restock(id, *body.Amount)
		}, "%s restocked")
	}
}

func changeStockItem(c *fiber.Ctx, d *Deps, apply func(*stock.Ledger, string) (models.StockItem, error), desc string) error {
	s := session.FromCtx(c)
	id := c.Params("id")

	before, ok := s.Stock.Get(id)
	if !ok {
		return httpError(stock.ErrNotFound)
	}
	it, err := apply(s.Stock, id)
	if err != nil {
		return httpError(err)
	}

	res := toStockItemResponse(it)
	d.record(c, audit.LogOptions{
		EntityType:  "stock_item",
		EntityID:    it.ID,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf(desc, it.Name),
		Before:      toStockItemResponse(before),
		After:       res,
	})

	return c.JSON(res)
}

// DELETE /api/stock/:id
func DeleteStockItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		id := c.Params("id")

		before, ok := s.Stock.Get(id)
		if !ok {
			return httpError(stock.ErrNotFound)
		}
		if err := s.Stock.Delete(id); err != nil {
			return httpError(err)
		}

		d.record(c, audit.LogOptions{
			EntityType:  "stock_item",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Stock item %s deleted", before.Name),
			Before:      toStockItemResponse(before),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/stock/alerts?unread=true
func ListStockAlertsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		if c.QueryBool("unread") {
			return c.JSON(toStockAlertResponses(s.Stock.UnreadAlerts()))
		}
		return c.JSON(toStockAlertResponses(s.Stock.Alerts()))
	}
}

// POST /api/stock/alerts/refresh
func RefreshStockAlertsHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts := session.FromCtx(c).Stock.RefreshAlerts()

		d.record(c, audit.LogOptions{
			EntityType:  "stock_alert",
			EntityID:    "all",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Alerts refreshed, %d active", len(alerts)),
		})

		return c.JSON(toStockAlertResponses(alerts))
	}
}

// POST /api/stock/alerts/:id/read
func MarkStockAlertReadHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := session.FromCtx(c).Stock.MarkAlertAsRead(id); err != nil {
			return httpError(err)
		}

		d.record(c, audit.LogOptions{
			EntityType:  "stock_alert",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Alert marked as read",
		})

		return c.JSON(fiber.Map{"message": "Alert marked as read"})
	}
}

// DELETE /api/stock/alerts
func ClearStockAlertsHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		n := len(s.Stock.Alerts())
		s.Stock.ClearAlerts()

		if n > 0 {
			d.record(c, audit.LogOptions{
				EntityType:  "stock_alert",
				EntityID:    "all",
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("%d alerts cleared", n),
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
