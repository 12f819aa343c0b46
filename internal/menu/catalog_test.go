package menu

import (
	"errors"
	"testing"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
)

func sampleItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Truffle Arancini", Description: "Crispy risotto balls with garlic aioli", Price: decimal.NewFromInt(12), Category: models.CategoryStarters, Stock: 15, IsFeatured: true, Allergens: []string{"gluten"}},
		{ID: "5", Name: "Wagyu Beef Burger", Description: "Premium patty with truffle mayo", Price: decimal.NewFromInt(28), Category: models.CategoryMains, Stock: 10},
		{ID: "10", Name: "Chocolate Lava Cake", Description: "Molten center", Price: decimal.NewFromInt(14), Category: models.CategoryDesserts, Stock: 20, IsFeatured: true},
		{ID: "2", Name: "Tuna Tartare", Description: "Yellowfin tuna", Price: decimal.NewFromInt(18), Category: models.CategoryStarters, Stock: 8},
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	c := NewCatalog(sampleItems())

	got := c.Categories()
	want := []string{"all", "starters", "mains", "desserts"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFilter(t *testing.T) {
	c := NewCatalog(sampleItems())

	if n := len(c.Filter("all", "")); n != 4 {
		t.Fatalf("expected wildcard to return 4 items, got %d", n)
	}
	if n := len(c.Filter("starters", "")); n != 2 {
		t.Fatalf("expected 2 starters, got %d", n)
	}
	// matches description, case-insensitive
	got := c.Filter("all", "TRUFFLE")
	if len(got) != 2 {
		t.Fatalf("expected 2 truffle matches, got %d", len(got))
	}
	got = c.Filter("mains", "truffle")
	if len(got) != 1 || got[0].ID != "5" {
		t.Fatalf("expected only the burger, got %+v", got)
	}
	if n := len(c.Filter("drinks", "")); n != 0 {
		t.Fatalf("expected no drinks, got %d", n)
	}
}

func TestFeaturedAndByCategory(t *testing.T) {
	c := NewCatalog(sampleItems())

	if n := len(c.Featured()); n != 2 {
		t.Fatalf("expected 2 featured items, got %d", n)
	}
	if n := len(c.ByCategory(models.CategoryDesserts)); n != 1 {
		t.Fatalf("expected 1 dessert, got %d", n)
	}
}

func TestUpdateItemStockClampsAndDerivesAvailability(t *testing.T) {
	c := NewCatalog(sampleItems())

	it, err := c.UpdateItemStock("1", -4)
	if err != nil {
		t.Fatalf("UpdateItemStock error: %v", err)
	}
	if it.Stock != 0 || it.IsAvailable() {
		t.Fatalf("expected stock 0 and unavailable, got %d / %v", it.Stock, it.IsAvailable())
	}

	it, _ = c.UpdateItemStock("1", 3)
	if it.Stock != 3 || !it.IsAvailable() {
		t.Fatalf("expected stock 3 and available, got %d / %v", it.Stock, it.IsAvailable())
	}

	if _, err := c.UpdateItemStock("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecrementStock(t *testing.T) {
	c := NewCatalog(sampleItems())

	it, err := c.DecrementStock("2", 3)
	if err != nil {
		t.Fatalf("DecrementStock error: %v", err)
	}
	if it.Stock != 5 {
		t.Fatalf("expected 5, got %d", it.Stock)
	}
	it, _ = c.DecrementStock("2", 50)
	if it.Stock != 0 || it.IsAvailable() {
		t.Fatalf("expected clamp to 0, got %d", it.Stock)
	}

	for _, amount := range []int{0, -5} {
		if _, err := c.DecrementStock("2", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if it, _ := c.Get("2"); it.Stock != 0 {
		t.Fatalf("rejected decrement changed stock to %d", it.Stock)
	}
}

func TestCatalogCopiesSeed(t *testing.T) {
	seed := sampleItems()
	a := NewCatalog(seed)
	b := NewCatalog(seed)

	_, _ = a.UpdateItemStock("1", 0)
	it, _ := b.Get("1")
	if it.Stock != 15 {
		t.Fatalf("catalogs share state: expected 15, got %d", it.Stock)
	}

	got, _ := a.Get("1")
	got.Allergens[0] = "changed"
	again, _ := a.Get("1")
	if again.Allergens[0] != "gluten" {
		t.Fatal("Get leaked internal allergen slice")
	}
}

func TestUpsert(t *testing.T) {
	c := NewCatalog(sampleItems())

	added, updated := c.Upsert([]models.MenuItem{
		{ID: "1", Name: "Arancini", Price: decimal.NewFromInt(13), Category: models.CategoryStarters, Stock: 4},
		{ID: "99", Name: "Lemonade", Price: decimal.NewFromInt(8), Category: models.CategoryDrinks, Stock: 30},
	})
	if added != 1 || updated != 1 {
		t.Fatalf("expected 1 added / 1 updated, got %d / %d", added, updated)
	}
	it, _ := c.Get("1")
	if it.Name != "Arancini" || it.Stock != 4 {
		t.Fatalf("unexpected item after upsert: %+v", it)
	}
	if len(c.Items()) != 5 {
		t.Fatalf("expected 5 items, got %d", len(c.Items()))
	}
}
