package stock

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func seed() []models.StockItem {
	return []models.StockItem{
		{ID: "STK-001", Name: "Wagyu Beef Patties", Category: "Meat", Quantity: 25, Unit: "pcs", MinThreshold: 10, MaxThreshold: 50},
		{ID: "STK-003", Name: "Fresh Lobster", Category: "Seafood", Quantity: 3, Unit: "pcs", MinThreshold: 5, MaxThreshold: 15},
		{ID: "STK-004", Name: "Burrata Cheese", Category: "Dairy", Quantity: 0, Unit: "pcs", MinThreshold: 8, MaxThreshold: 20},
		{ID: "STK-009", Name: "Salmon Fillets", Category: "Seafood", Quantity: 6, Unit: "pcs", MinThreshold: 8, MaxThreshold: 20},
	}
}

func TestInitialAlerts(t *testing.T) {
	l := NewLedger(seed(), clock)

	alerts := l.Alerts()
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %+v", alerts)
	}
	byID := map[string]models.StockAlert{}
	for _, a := range alerts {
		byID[a.ID] = a
	}
	out, ok := byID["ALT-STK-004-OUT"]
	if !ok || out.AlertType != models.StockAlertOut || out.IsRead {
		t.Fatalf("missing out alert: %+v", alerts)
	}
	if _, ok := byID["ALT-STK-003-LOW"]; !ok {
		t.Fatalf("missing low alert: %+v", alerts)
	}
	if _, ok := byID["ALT-STK-001-LOW"]; ok {
		t.Fatal("healthy item should have no alert")
	}
}

func TestRestockClampsAndClearsAlerts(t *testing.T) {
	later := testNow.Add(48 * time.Hour)
	l := NewLedger(seed(), func() time.Time { return later })

	it, err := l.Restock("STK-003", 20)
	if err != nil {
		t.Fatalf("Restock error: %v", err)
	}
	if it.Quantity != 15 {
		t.Fatalf("expected clamp to 15, got %v", it.Quantity)
	}
	if !it.LastRestocked.Equal(later) {
		t.Fatalf("restock date not stamped: %v", it.LastRestocked)
	}
	for _, a := range l.Alerts() {
		if a.ItemID == "STK-003" {
			t.Fatalf("alert for restocked item remains: %+v", a)
		}
	}

	it, _ = l.Restock("STK-001", 5)
	if it.Quantity != 30 {
		t.Fatalf("expected 30, got %v", it.Quantity)
	}

	if _, err := l.Restock("STK-001", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.Restock("STK-404", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateQuantityFloorsWithoutCeiling(t *testing.T) {
	l := NewLedger(seed(), clock)

	it, err := l.UpdateQuantity("STK-001", -3)
	if err != nil {
		t.Fatalf("UpdateQuantity error: %v", err)
	}
	if it.Quantity != 0 {
		t.Fatalf("expected floor at 0, got %v", it.Quantity)
	}
	it, _ = l.UpdateQuantity("STK-001", 80)
	if it.Quantity != 80 {
		t.Fatalf("expected no ceiling, got %v", it.Quantity)
	}
	if _, err := l.UpdateQuantity("nope", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAlertsAreNotReactive(t *testing.T) {
	l := NewLedger(seed(), clock)
	before := len(l.Alerts())

	if _, err := l.UpdateQuantity("STK-001", 0); err != nil {
		t.Fatalf("UpdateQuantity error: %v", err)
	}
	if len(l.Alerts()) != before {
		t.Fatal("direct quantity updates should not regenerate alerts")
	}

	if err := l.MarkAlertAsRead("ALT-STK-004-OUT"); err != nil {
		t.Fatalf("MarkAlertAsRead error: %v", err)
	}
	fresh := l.RefreshAlerts()
	if len(fresh) != before+1 {
		t.Fatalf("expected %d alerts after refresh, got %d", before+1, len(fresh))
	}
	for _, a := range fresh {
		if a.ID == "ALT-STK-004-OUT" && !a.IsRead {
			t.Fatal("refresh lost the read flag")
		}
	}
}

func TestAlertReadAndClear(t *testing.T) {
	l := NewLedger(seed(), clock)

	if err := l.MarkAlertAsRead("ALT-STK-003-LOW"); err != nil {
		t.Fatalf("MarkAlertAsRead error: %v", err)
	}
	if n := len(l.UnreadAlerts()); n != 2 {
		t.Fatalf("expected 2 unread, got %d", n)
	}
	if err := l.MarkAlertAsRead("ALT-X"); !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}

	l.ClearAlerts()
	if len(l.Alerts()) != 0 {
		t.Fatal("alerts not cleared")
	}
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	l := NewLedger(seed(), clock)

	it, err := l.Add(models.StockItem{Name: "Saffron", Category: "Spices", Quantity: 2, Unit: "g", MinThreshold: 1, MaxThreshold: 10, CostPerUnit: decimal.NewFromInt(9)})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if it.ID != "STK-010" {
		t.Fatalf("expected STK-010, got %s", it.ID)
	}
	if !it.LastRestocked.Equal(testNow) {
		t.Fatalf("expected default restock date, got %v", it.LastRestocked)
	}

	_ = l.Delete(it.ID)
	again, _ := l.Add(models.StockItem{Name: "Saffron", Unit: "g", MaxThreshold: 10})
	if again.ID != "STK-011" {
		t.Fatalf("ids must not be reused, got %s", again.ID)
	}

	if _, err := l.Add(models.StockItem{Name: "", Unit: "g", MaxThreshold: 1}); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	if _, err := l.Add(models.StockItem{Name: "x", Unit: "g", MinThreshold: 5, MaxThreshold: 1}); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem for inverted thresholds, got %v", err)
	}
}

func TestUpdatePatch(t *testing.T) {
	l := NewLedger(seed(), clock)

	supplier := "Ocean Fresh"
	maxT := 30.0
	it, err := l.Update("STK-009", Patch{Supplier: &supplier, MaxThreshold: &maxT})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if it.Supplier != supplier || it.MaxThreshold != 30 || it.Name != "Salmon Fillets" {
		t.Fatalf("unexpected item %+v", it)
	}

	bad := -1.0
	if _, err := l.Update("STK-009", Patch{Quantity: &bad}); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	got, _ := l.Get("STK-009")
	if got.Quantity != 6 {
		t.Fatal("failed update mutated the item")
	}
	if _, err := l.Update("nope", Patch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePurgesAlerts(t *testing.T) {
	l := NewLedger(seed(), clock)

	if err := l.Delete("STK-004"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := l.Get("STK-004"); ok {
		t.Fatal("item still present")
	}
	for _, a := range l.Alerts() {
		if a.ItemID == "STK-004" {
			t.Fatal("alert survived delete")
		}
	}
	if err := l.Delete("STK-004"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueries(t *testing.T) {
	l := NewLedger(seed(), clock)

	if n := len(l.LowStock()); n != 2 {
		t.Fatalf("expected 2 low items, got %d", n)
	}
	if got := l.OutOfStock(); len(got) != 1 || got[0].ID != "STK-004" {
		t.Fatalf("unexpected out set %+v", got)
	}
	if n := len(l.ByCategory("Seafood")); n != 2 {
		t.Fatalf("expected 2 seafood items, got %d", n)
	}
	if got := l.Search("sea", FilterLow); len(got) != 2 {
		t.Fatalf("expected 2 low seafood items, got %+v", got)
	}
	if got := l.Search("lobster", FilterOut); len(got) != 0 {
		t.Fatalf("expected none, got %+v", got)
	}
	if got := l.Search("", FilterAll); len(got) != 4 {
		t.Fatalf("expected all items, got %d", len(got))
	}
}

func TestLevelAndSuggestion(t *testing.T) {
	it := models.StockItem{Quantity: 3, MaxThreshold: 15}
	if got := LevelPercent(it); got != 20 {
		t.Fatalf("expected 20%%, got %v", got)
	}
	if got := SuggestedRestock(it); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
	it.Quantity = 12
	if got := SuggestedRestock(it); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	it.Quantity = 40
	if got := LevelPercent(it); got != 100 {
		t.Fatalf("expected cap at 100, got %v", got)
	}
	if got := SuggestedRestock(it); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestLoadSeedFile(t *testing.T) {
	items, err := LoadFile(filepath.Join("..", "..", "configs", "stock.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(items))
	}
	if items[6].Name != "Dark Chocolate 70%" || !items[6].CostPerUnit.Equal(decimal.RequireFromString("3.25")) {
		t.Fatalf("unexpected item %+v", items[6])
	}

	l := NewLedger(items, clock)
	// Arborio, Lobster, Basil, Salmon low; Burrata out
	if n := len(l.Alerts()); n != 5 {
		t.Fatalf("expected 5 seed alerts, got %d", n)
	}
}
