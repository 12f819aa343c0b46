package analytics

import (
	"bytes"
	"testing"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

func menuItem(id string, cat models.MenuCategory, price int64) models.MenuItem {
	return models.MenuItem{ID: id, Name: "Item " + id, Category: cat, Price: decimal.NewFromInt(price), Stock: 10}
}

func order(id string, created time.Time, ps models.PaymentStatus, final string, items ...models.CartItem) models.Order {
	return models.Order{
		ID:            id,
		Items:         items,
		FinalAmount:   decimal.RequireFromString(final),
		Status:        models.OrderStatusPending,
		PaymentStatus: ps,
		PaymentMethod: models.PaymentMethodCard,
		OrderType:     models.OrderTypeDineIn,
		CreatedAt:     created,
	}
}

func fixture() ([]models.Order, []models.MenuItem) {
	menu := []models.MenuItem{
		menuItem("1", models.CategoryStarters, 12),
		menuItem("5", models.CategoryMains, 28),
		menuItem("7", models.CategoryMains, 42),
		menuItem("10", models.CategoryDesserts, 14),
	}
	line := func(i int, q int) models.CartItem { return models.CartItem{MenuItem: menu[i], Quantity: q} }

	orders := []models.Order{
		order("ORD-003", now.Add(-time.Hour), models.PaymentStatusPending, "46.2", line(3, 3)),
		order("ORD-002", now.Add(-2*time.Hour), models.PaymentStatusPaid, "110", line(2, 2), line(0, 1)),
		order("ORD-001", now.Add(-26*time.Hour), models.PaymentStatusPaid, "57.2", line(0, 2), line(1, 1)),
	}
	orders[0].PaymentMethod = models.PaymentMethodCash
	orders[0].OrderType = models.OrderTypeTakeaway
	orders[2].Status = models.OrderStatusCompleted
	return orders, menu
}

func TestBuild(t *testing.T) {
	orders, menu := fixture()
	r := Build(orders, menu, now)

	if !r.Today.Revenue.Equal(decimal.NewFromInt(110)) || r.Today.Orders != 2 {
		t.Fatalf("unexpected today summary %+v", r.Today)
	}
	if !r.Today.AverageOrderValue.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected today avg 55, got %s", r.Today.AverageOrderValue)
	}
	if !r.AllTime.Revenue.Equal(decimal.RequireFromString("167.2")) || r.AllTime.Orders != 3 {
		t.Fatalf("unexpected all-time summary %+v", r.AllTime)
	}
	if !r.AllTime.AverageOrderValue.Equal(decimal.RequireFromString("55.73")) {
		t.Fatalf("expected avg 55.73, got %s", r.AllTime.AverageOrderValue)
	}

	if r.StatusBreakdown[models.OrderStatusPending] != 2 || r.StatusBreakdown[models.OrderStatusCompleted] != 1 {
		t.Fatalf("unexpected status breakdown %v", r.StatusBreakdown)
	}
	if r.TypeBreakdown[models.OrderTypeTakeaway] != 1 || r.PaymentBreakdown[models.PaymentMethodCard] != 2 {
		t.Fatalf("unexpected breakdowns %v %v", r.TypeBreakdown, r.PaymentBreakdown)
	}

	// lobster 84, arancini 36, dessert 42, burger 28
	wantTop := []string{"7", "10", "1", "5"}
	if len(r.TopItems) != len(wantTop) {
		t.Fatalf("unexpected top items %+v", r.TopItems)
	}
	for i, id := range wantTop {
		if r.TopItems[i].ItemID != id {
			t.Fatalf("expected %v, got %+v", wantTop, r.TopItems)
		}
	}
	if r.TopItems[2].Quantity != 3 || !r.TopItems[2].Revenue.Equal(decimal.NewFromInt(36)) {
		t.Fatalf("unexpected arancini sales %+v", r.TopItems[2])
	}

	if len(r.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %+v", r.Categories)
	}
	mains := r.Categories[1]
	if mains.Category != models.CategoryMains || mains.Quantity != 3 || !mains.Revenue.Equal(decimal.NewFromInt(112)) {
		t.Fatalf("unexpected mains %+v", mains)
	}
}

func TestTopItemsLimitedToFive(t *testing.T) {
	var menu []models.MenuItem
	var items []models.CartItem
	for i := 1; i <= 7; i++ {
		it := menuItem(string(rune('a'+i)), models.CategoryDrinks, int64(i))
		menu = append(menu, it)
		items = append(items, models.CartItem{MenuItem: it, Quantity: 1})
	}
	r := Build([]models.Order{order("ORD-001", now, models.PaymentStatusPaid, "1", items...)}, menu, now)
	if len(r.TopItems) != 5 || !r.TopItems[0].Revenue.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("unexpected top items %+v", r.TopItems)
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, nil, now)
	if !r.AllTime.Revenue.IsZero() || !r.AllTime.AverageOrderValue.IsZero() || len(r.TopItems) != 0 {
		t.Fatalf("unexpected empty report %+v", r)
	}
}

func TestWriteXLSX(t *testing.T) {
	orders, menu := fixture()
	var buf bytes.Buffer
	if err := WriteXLSX(Build(orders, menu, now), &buf); err != nil {
		t.Fatalf("WriteXLSX error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 || sheets[0] != "Summary" {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	v, err := f.GetCellValue("Summary", "C4")
	if err != nil || v != "167.2" {
		t.Fatalf("expected all-time revenue 167.2 in C4, got %q (%v)", v, err)
	}
	rows, _ := f.GetRows("Top Items")
	if len(rows) != 5 || rows[1][0] != "7" {
		t.Fatalf("unexpected top item rows %v", rows)
	}
}
