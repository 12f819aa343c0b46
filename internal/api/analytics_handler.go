package api

import (
	"bytes"
	"fmt"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/analytics"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/pricing"
	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	Revenue           float64 `json:"revenue"`
	Orders            int     `json:"orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

type ItemSalesResponse struct {
	ItemID   string              `json:"item_id"`
	ItemName string              `json:"item_name"`
	Category models.MenuCategory `json:"category"`
	Quantity int                 `json:"quantity"`
	Revenue  float64             `json:"revenue"`
}

type CategorySalesResponse struct {
	Category models.MenuCategory `json:"category"`
	Revenue  float64             `json:"revenue"`
	Quantity int                 `json:"quantity"`
}

type AnalyticsResponse struct {
	GeneratedAt      string                       `json:"generated_at"`
	Today            SummaryResponse              `json:"today"`
	AllTime          SummaryResponse              `json:"all_time"`
	StatusBreakdown  map[models.OrderStatus]int   `json:"status_breakdown"`
	TypeBreakdown    map[models.OrderType]int     `json:"type_breakdown"`
	PaymentBreakdown map[models.PaymentMethod]int `json:"payment_breakdown"`
	TopItems         []ItemSalesResponse          `json:"top_items"`
	Categories       []CategorySalesResponse      `json:"categories"`
}

func toSummaryResponse(s analytics.Summary) SummaryResponse {
	return SummaryResponse{
		Revenue:           pricing.Float(s.Revenue),
		Orders:            s.Orders,
		AverageOrderValue: pricing.Float(s.AverageOrderValue),
	}
}

func toAnalyticsResponse(r analytics.Report) AnalyticsResponse {
	res := AnalyticsResponse{
		GeneratedAt:      r.GeneratedAt.Format(time.RFC3339),
		Today:            toSummaryResponse(r.Today),
		AllTime:          toSummaryResponse(r.AllTime),
		StatusBreakdown:  r.StatusBreakdown,
		TypeBreakdown:    r.TypeBreakdown,
		PaymentBreakdown: r.PaymentBreakdown,
		TopItems:         make([]ItemSalesResponse, 0, len(r.TopItems)),
		Categories:       make([]CategorySalesResponse, 0, len(r.Categories)),
	}
	for _, it := range r.TopItems {
		res.TopItems = append(res.TopItems, ItemSalesResponse{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Category: it.Category,
			Quantity: it.Quantity,
			Revenue:  pricing.Float(it.Revenue),
		})
	}
	for _, cs := range r.Categories {
		res.Categories = append(res.Categories, CategorySalesResponse{
			Category: cs.Category,
			Revenue:  pricing.Float(cs.Revenue),
			Quantity: cs.Quantity,
		})
	}
	return res
}

func buildReport(c *fiber.Ctx, d *Deps) analytics.Report {
	s := session.FromCtx(c)
	return analytics.Build(s.Orders.All(), s.Menu.Items(), d.now())
}

// GET /api/analytics
func AnalyticsHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(toAnalyticsResponse(buildReport(c, d)))
	}
}

// GET /api/analytics/export
func ExportAnalyticsHandler(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r := buildReport(c, d)

		var buf bytes.Buffer
		if err := analytics.WriteXLSX(r, &buf); err != nil {
			d.Log.Error().Err(err).Msg("analytics export failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Report could not be exported")
		}

		c.Attachment(fmt.Sprintf("analytics-%s.xlsx", r.GeneratedAt.Format("2006-01-02")))
		return c.Send(buf.Bytes())
	}
}
