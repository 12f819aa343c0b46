package api

import (
	"fmt"

	"github.com/JawwadIrshad/Resturant-App/internal/audit"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

type CartMutationResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Cart    CartResponse `json:"cart"`
}

// GET /api/cart
func GetCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(toCartResponse(session.FromCtx(c).Cart.State()))
	}
}

type AddCartItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// POST /api/cart/items
func AddCartItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddCartItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ItemID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "item_id is required")
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}

		s := session.FromCtx(c)
		item, ok := s.Menu.Get(body.ItemID)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}

		res := s.Cart.Add(item, body.Quantity)
		if !res.Success {
			return cartError(res)
		}

		d.record(c, audit.LogOptions{
			EntityType:  "cart",
			EntityID:    item.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Added %d x %s to cart", body.Quantity, item.Name),
			After:       fiber.Map{"item_id": item.ID, "quantity": s.Cart.Quantity(item.ID)},
		})

		return c.JSON(CartMutationResponse{Success: true, Message: res.Message, Cart: toCartResponse(s.Cart.State())})
	}
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// PUT /api/cart/items/:id
// A quantity of zero or less removes the line.
func UpdateCartItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateCartItemRequest
		if err := c.BodyParser(&body); err != nil || body.Quantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "quantity is required")
		}

		s := session.FromCtx(c)
		id := c.Params("id")
		before := s.Cart.Quantity(id)

		res := s.Cart.UpdateQuantity(id, *body.Quantity)
		if !res.Success {
			return cartError(res)
		}

		// zeroing a line that was never in the cart changes nothing
		if before > 0 {
			action := models.AuditActionUpdate
			if *body.Quantity <= 0 {
				action = models.AuditActionDelete
			}
			d.record(c, audit.LogOptions{
				EntityType:  "cart",
				EntityID:    id,
				Action:      action,
				Description: fmt.Sprintf("Cart quantity of %s changed", id),
				Before:      fiber.Map{"item_id": id, "quantity": before},
				After:       fiber.Map{"item_id": id, "quantity": s.Cart.Quantity(id)},
			})
		}

		return c.JSON(CartMutationResponse{Success: true, Message: res.Message, Cart: toCartResponse(s.Cart.State())})
	}
}

// DELETE /api/cart/items/:id
func RemoveCartItemHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		id := c.Params("id")
		before := s.Cart.Quantity(id)
		s.Cart.Remove(id)

		// removing an absent line is a no-op and leaves no trail
		if before > 0 {
			d.record(c, audit.LogOptions{
				EntityType:  "cart",
				EntityID:    id,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Removed %s from cart", id),
				Before:      fiber.Map{"item_id": id, "quantity": before},
			})
		}

		return c.JSON(CartMutationResponse{Success: true, Message: "Item removed from cart", Cart: toCartResponse(s.Cart.State())})
	}
}

// DELETE /api/cart
func ClearCartHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		before := s.Cart.State()
		s.Cart.Clear()

		if len(before.Items) > 0 {
			d.record(c, audit.LogOptions{
				EntityType:  "cart",
				EntityID:    "all",
				Action:      models.AuditActionDelete,
				Description: "Cart cleared",
				Before:      toCartResponse(before),
			})
		}

		return c.JSON(CartMutationResponse{Success: true, Message: "Cart cleared", Cart: toCartResponse(s.Cart.State())})
	}
}
