// Package analytics aggregates the order book against the menu. It holds no
// state; every report is recomputed from the inputs.
package analytics

import (
	"sort"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/pricing"

	"github.com/shopspring/decimal"
)

const topItemsLimit = 5

type Summary struct {
	Revenue           decimal.Decimal
	Orders            int
	AverageOrderValue decimal.Decimal
}

type ItemSales struct {
	ItemID   string
	ItemName string
	Category models.MenuCategory
	Quantity int
	Revenue  decimal.Decimal
}

type CategorySales struct {
	Category models.MenuCategory
	Revenue  decimal.Decimal
	Quantity int
}

type Report struct {
	GeneratedAt time.Time
	Today       Summary
	AllTime     Summary

	StatusBreakdown  map[models.OrderStatus]int
	TypeBreakdown    map[models.OrderType]int
	PaymentBreakdown map[models.PaymentMethod]int

	TopItems   []ItemSales
	Categories []CategorySales
}

// Build computes the dashboard figures. Revenue counts only paid orders'
// final amounts, while averages divide by every order in the window.
func Build(orders []models.Order, menu []models.MenuItem, now time.Time) Report {
	r := Report{
		GeneratedAt:      now,
		StatusBreakdown:  map[models.OrderStatus]int{},
		TypeBreakdown:    map[models.OrderType]int{},
		PaymentBreakdown: map[models.PaymentMethod]int{},
	}

	var today []models.Order
	y, m, d := now.Date()
	for _, o := range orders {
		oy, om, od := o.CreatedAt.In(now.Location()).Date()
		if oy == y && om == m && od == d {
			today = append(today, o)
		}
		r.StatusBreakdown[o.Status]++
		r.TypeBreakdown[o.OrderType]++
		r.PaymentBreakdown[o.PaymentMethod]++
	}
	r.Today = summarize(today)
	r.AllTime = summarize(orders)

	sales := map[string]*ItemSales{}
	var order []string
	for _, o := range orders {
		for _, it := range o.Items {
			s, ok := sales[it.ID]
			if !ok {
				s = &ItemSales{ItemID: it.ID, ItemName: it.Name, Category: it.Category, Revenue: decimal.Zero}
				sales[it.ID] = s
				order = append(order, it.ID)
			}
			s.Quantity += it.Quantity
			s.Revenue = s.Revenue.Add(pricing.LineTotal(it.Price, it.Quantity))
		}
	}

	all := make([]ItemSales, 0, len(order))
	for _, id := range order {
		all = append(all, *sales[id])
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Revenue.GreaterThan(all[j].Revenue) })
	if len(all) > topItemsLimit {
		all = all[:topItemsLimit]
	}
	r.TopItems = all

	// categories come from the current menu, so items no longer on it drop out
	byCat := map[models.MenuCategory]*CategorySales{}
	var cats []models.MenuCategory
	for _, it := range menu {
		s, ok := sales[it.ID]
		if !ok {
			continue
		}
		c, ok := byCat[it.Category]
		if !ok {
			c = &CategorySales{Category: it.Category, Revenue: decimal.Zero}
			byCat[it.Category] = c
			cats = append(cats, it.Category)
		}
		c.Revenue = c.Revenue.Add(s.Revenue)
		c.Quantity += s.Quantity
	}
	for _, c := range cats {
		r.Categories = append(r.Categories, *byCat[c])
	}
	return r
}

func summarize(orders []models.Order) Summary {
	s := Summary{Revenue: decimal.Zero, AverageOrderValue: decimal.Zero, Orders: len(orders)}
	for _, o := range orders {
		if o.PaymentStatus == models.PaymentStatusPaid {
			s.Revenue = s.Revenue.Add(o.FinalAmount)
		}
	}
	if s.Orders > 0 {
		s.AverageOrderValue = s.Revenue.Div(decimal.NewFromInt(int64(s.Orders))).Round(2)
	}
	return s
}
