package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/audit"
	"github.com/JawwadIrshad/Resturant-App/internal/events"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

type Deps struct {
	Registry  *session.Registry
	Recorder  audit.Recorder
	Publisher events.Publisher
	Log       zerolog.Logger

	SessionSecret      string
	SessionTTL         time.Duration
	CORSOrigins        string
	DecrementMenuStock bool

	// AccessLog turns on fiber's request logger.
	AccessLog bool
	Now       func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// record writes an audit entry. Failures are logged, never returned; the
// change itself has already happened.
func (d *Deps) record(c *fiber.Ctx, opts audit.LogOptions) {
	opts.SessionID = session.IDFromCtx(c)
	if err := d.Recorder.WriteLog(c.UserContext(), opts); err != nil {
		d.Log.Error().Err(err).Str("entity_type", opts.EntityType).Str("entity_id", opts.EntityID).Msg("audit log failed")
	}
}

func (d *Deps) publish(c *fiber.Ctx, typ string, o models.Order) {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()
	if err := d.Publisher.Publish(ctx, events.NewOrderEvent(typ, session.IDFromCtx(c), o)); err != nil {
		d.Log.Error().Err(err).Str("event", typ).Str("order_id", o.ID).Msg("order event publish failed")
	}
}

func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			d.Log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}

	corsOrigins := strings.Split(d.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/sessions", CreateSessionHandler(d))

	// Protected
	protected := api.Group("")
	protected.Use(session.Middleware(d.SessionSecret, d.Registry))

	protected.Get("/session", GetSessionHandler())

	// Menu
	protected.Get("/menu", ListMenuHandler())
	protected.Get("/menu/categories", ListCategoriesHandler())
	protected.Get("/menu/featured", ListFeaturedHandler())
	protected.Post("/menu/import", ImportMenuHandler(d))
	protected.Get("/menu/:id", GetMenuItemHandler())
	protected.Put("/menu/:id/stock", UpdateMenuStockHandler(d))

	// Cart
	protected.Get("/cart", GetCartHandler())
	protected.Post("/cart/items", AddCartItemHandler(d))
	protected.Put("/cart/items/:id", UpdateCartItemHandler(d))
	protected.Delete("/cart/items/:id", RemoveCartItemHandler(d))
	protected.Delete("/cart", ClearCartHandler(d))

	// Orders
	protected.Post("/orders/checkout", CheckoutHandler(d))
	protected.Get("/orders", ListOrdersHandler())
	protected.Get("/orders/summary", OrderSummaryHandler())
	protected.Get("/orders/:id", GetOrderHandler())
	protected.Put("/orders/:id/status", UpdateOrderStatusHandler(d))
	protected.Post("/orders/:id/advance", AdvanceOrderHandler(d))
	protected.Put("/orders/:id/payment", UpdatePaymentStatusHandler(d))
	protected.Post("/orders/:id/cancel", CancelOrderHandler(d))
	protected.Get("/kitchen/queue", KitchenQueueHandler(d))

	// Stock ledger (alerts before :id)
	protected.Get("/stock/alerts", ListStockAlertsHandler())
	protected.Post("/stock/alerts/refresh", RefreshStockAlertsHandler(d))
	protected.Post("/stock/alerts/:id/read", MarkStockAlertReadHandler(d))
	protected.Delete("/stock/alerts", ClearStockAlertsHandler(d))
	protected.Get("/stock", ListStockHandler())
	protected.Post("/stock", CreateStockItemHandler(d))
	protected.Get("/stock/:id", GetStockItemHandler())
	protected.Put("/stock/:id", UpdateStockItemHandler(d))
	protected.Put("/stock/:id/quantity", UpdateStockQuantityHandler(d))
	protected.Post("/stock/:id/restock", RestockItemHandler(d))
	protected.Delete("/stock/:id", DeleteStockItemHandler(d))

	// Analytics
	protected.Get("/analytics", AnalyticsHandler(d))
	protected.Get("/analytics/export", ExportAnalyticsHandler(d))

	// Chat
	protected.Get("/chat", GetChatHandler())
	protected.Post("/chat/messages", SendChatMessageHandler())
	protected.Delete("/chat", ClearChatHandler())

	// Audit trail
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(d.Recorder, session.IDFromCtx))

	return app
}
