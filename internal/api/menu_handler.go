package api

import (
	"fmt"

	"github.com/JawwadIrshad/Resturant-App/internal/audit"
	"github.com/JawwadIrshad/Resturant-App/internal/menu"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

// GET /api/menu?category=mains&q=salmon
func ListMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		category := c.Query("category", models.CategoryAll)
		if category != models.CategoryAll && !models.MenuCategory(category).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown category")
		}
		return c.JSON(toMenuItemResponses(s.Menu.Filter(category, c.Query("q"))))
	}
}

// GET /api/menu/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(session.FromCtx(c).Menu.Categories())
	}
}

// GET /api/menu/featured
func ListFeaturedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(toMenuItemResponses(session.FromCtx(c).Menu.Featured()))
	}
}

// GET /api/menu/:id
func GetMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, ok := session.FromCtx(c).Menu.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}
		return c.JSON(toMenuItemResponse(item))
	}
}

type UpdateMenuStockRequest struct {
	Stock *int `json:"stock"`
}

// PUT /api/menu/:id/stock
func UpdateMenuStockHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateMenuStockRequest
		if err := c.BodyParser(&body); err != nil || body.Stock == nil {
			return fiber.NewError(fiber.StatusBadRequest, "stock is required")
		}

		s := session.FromCtx(c)
		id := c.Params("id")
		before, ok := s.Menu.Get(id)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}

		item, err := s.Menu.UpdateItemStock(id, *body.Stock)
		if err != nil {
			return httpError(err)
		}

		d.record(c, audit.LogOptions{
			EntityType:  "menu_item",
			EntityID:    item.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stock of %s set to %d", item.Name, item.Stock),
			Before:      toMenuItemResponse(before),
			After:       toMenuItemResponse(item),
		})

		return c.JSON(toMenuItemResponse(item))
	}
}

type ImportMenuResponse struct {
	Added   int             `json:"added"`
	Updated int             `json:"updated"`
	Skipped []menu.RowError `json:"skipped"`
}

// POST /api/menu/import (multipart, field "file")
func ImportMenuHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file could not be opened")
		}
		defer f.Close()

		items, skipped, err := menu.ReadXLSX(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is not a valid spreadsheet")
		}

		added, updated := session.FromCtx(c).Menu.Upsert(items)

		if added+updated > 0 {
			d.record(c, audit.LogOptions{
				EntityType:  "menu_item",
				EntityID:    "import",
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Menu import: %d added, %d updated, %d skipped", added, updated, len(skipped)),
				After:       toMenuItemResponses(items),
			})
		}

		if skipped == nil {
			skipped = []menu.RowError{}
		}
		return c.JSON(ImportMenuResponse{Added: added, Updated: updated, Skipped: skipped})
	}
}
