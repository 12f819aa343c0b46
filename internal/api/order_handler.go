package api

import (
	"fmt"

	"github.com/JawwadIrshad/Resturant-App/internal/audit"
	"github.com/JawwadIrshad/Resturant-App/internal/cart"
	"github.com/JawwadIrshad/Resturant-App/internal/events"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/orders"
	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

type CheckoutRequest struct {
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	TableNumber   string               `json:"table_number"`
	OrderType     models.OrderType     `json:"order_type"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Notes         string               `json:"notes"`
}

// POST /api/orders/checkout
// Turns the session cart into an order, lowers menu stock and empties the cart.
func CheckoutHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.OrderType == "" {
			body.OrderType = models.OrderTypeDineIn
		}
		if body.PaymentMethod == "" {
			body.PaymentMethod = models.PaymentMethodCash
		}

		s := session.FromCtx(c)
		unlock := s.LockCheckout()
		defer unlock()

		state := s.Cart.State()
		if len(state.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Your cart is empty")
		}

		in, err := orders.NormalizeCheckout(orders.CreateOrderInput{
			Items:         state.Items,
			CustomerName:  body.CustomerName,
			CustomerPhone: body.CustomerPhone,
			TableNumber:   body.TableNumber,
			OrderType:     body.OrderType,
			PaymentMethod: body.PaymentMethod,
			Notes:         body.Notes,
		})
		if err != nil {
			return httpError(err)
		}

		// cart lines carry the stock seen when they were added; an earlier
		// order may have used some of it since
		if d.DecrementMenuStock {
			for _, it := range state.Items {
				cur, ok := s.Menu.Get(it.ID)
				if !ok {
					return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("%s is no longer on the menu", it.Name))
				}
				if cur.Stock < it.Quantity {
					if !cur.IsAvailable() {
						return httpError(fmt.Errorf("%w: %s is currently unavailable", cart.ErrUnavailable, cur.Name))
					}
					return httpError(fmt.Errorf("%w: only %d %s available in stock", cart.ErrInsufficientStock, cur.Stock, cur.Name))
				}
			}
		}

		order, err := s.Orders.Create(in)
		if err != nil {
			return httpError(err)
		}

		if d.DecrementMenuStock {
			for _, it := range order.Items {
				if _, err := s.Menu.DecrementStock(it.ID, it.Quantity); err != nil {
					d.Log.Warn().Err(err).Str("item_id", it.ID).Str("order_id", order.ID).Msg("menu stock not decremented")
				}
			}
		}
		s.Cart.Clear()

		res := toOrderResponse(order)
		d.record(c, audit.LogOptions{
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Order %s placed by %s", order.ID, order.CustomerName),
			After:       res,
		})
		d.publish(c, events.OrderCreated, order)

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/orders?status=pending
// GET /api/orders?scope=today|pending
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)

		var list []models.Order
		switch scope := c.Query("scope"); scope {
		case "", "all":
			list = s.Orders.All()
		case "today":
			list = s.Orders.Today()
		case "pending":
			list = s.Orders.Pending()
		default:
			return fiber.NewError(fiber.StatusBadRequest, "scope must be today or pending")
		}

		if st := c.Query("status"); st != "" && st != "all" {
			status := models.OrderStatus(st)
			if !status.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown status")
			}
			filtered := list[:0]
			for _, o := range list {
				if o.Status == status {
					filtered = append(filtered, o)
				}
			}
			list = filtered
		}

		return c.JSON(toOrderResponses(list))
	}
}

// GET /api/orders/summary
func OrderSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(session.FromCtx(c).Orders.StatusCounts())
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, ok := session.FromCtx(c).Orders.Get(c.Params("id"))
		if !ok {
			return httpError(orders.ErrNotFound)
		}
		return c.JSON(toOrderResponse(o))
	}
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// PUT /api/orders/:id/status
func UpdateOrderStatusHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateOrderStatusRequest
		if err := c.BodyParser(&body); err != nil || body.Status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status is required")
		}
		return changeStatus(c, d, func(b *orders.Book, id string) (models.Order, error) {
			return b.UpdateStatus(id, body.Status)
		})
	}
}

// POST /api/orders/:id/advance
func AdvanceOrderHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return changeStatus(c, d, (*orders.Book).Advance)
	}
}

// POST /api/orders/:id/cancel
func CancelOrderHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return changeStatus(c, d, (*orders.Book).Cancel)
	}
}

func changeStatus(c *fiber.Ctx, d *Deps, apply func(*orders.Book, string) (models.Order, error)) error {
	s := session.FromCtx(c)
	id := c.Params("id")

	before, ok := s.Orders.Get(id)
	if !ok {
		return httpError(orders.ErrNotFound)
	}
	order, err := apply(s.Orders, id)
	if err != nil {
		return httpError(err)
	}

	d.record(c, audit.LogOptions{
		EntityType:  "order",
		EntityID:    order.ID,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("Order %s moved from %s to %s", order.ID, before.Status, order.Status),
		Before:      fiber.Map{"status": before.Status},
		After:       fiber.Map{"status": order.Status},
	})

	typ := events.OrderStatusChanged
	if order.Status == models.OrderStatusCancelled {
		typ = events.OrderCancelled
	}
	d.publish(c, typ, order)

	return c.JSON(toOrderResponse(order))
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

// PUT /api/orders/:id/payment
func UpdatePaymentStatusHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdatePaymentStatusRequest
		if err := c.BodyParser(&body); err != nil || body.PaymentStatus == "" {
			return fiber.NewError(fiber.StatusBadRequest, "payment_status is required")
		}

		s := session.FromCtx(c)
		id := c.Params("id")
		before, ok := s.Orders.Get(id)
		if !ok {
			return httpError(orders.ErrNotFound)
		}

		order, err := s.Orders.UpdatePaymentStatus(id, body.PaymentStatus)
		if err != nil {
			return httpError(err)
		}

		d.record(c, audit.LogOptions{
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Payment of %s set to %s", order.ID, order.PaymentStatus),
			Before:      fiber.Map{"payment_status": before.PaymentStatus},
			After:       fiber.Map{"payment_status": order.PaymentStatus},
		})
		d.publish(c, events.OrderPaymentChanged, order)

		return c.JSON(toOrderResponse(order))
	}
}

type KitchenTicket struct {
	OrderResponse
	ElapsedMinutes int  `json:"elapsed_minutes"`
	Overdue        bool `json:"overdue"`
}

// GET /api/kitchen/queue
func KitchenQueueHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := d.now()
		queue := session.FromCtx(c).Orders.KitchenQueue()

		res := make([]KitchenTicket, 0, len(queue))
		for _, o := range queue {
			res = append(res, KitchenTicket{
				OrderResponse:  toOrderResponse(o),
				ElapsedMinutes: orders.ElapsedMinutes(o, now),
				Overdue:        orders.Overdue(o, now),
			})
		}
		return c.JSON(res)
	}
}
