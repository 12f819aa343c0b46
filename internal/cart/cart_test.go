package cart

import (
	"errors"
	"testing"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
)

func item(id string, price int64, stock int) models.MenuItem {
	return models.MenuItem{
		ID:       id,
		Name:     "Item " + id,
		Price:    decimal.NewFromInt(price),
		Category: models.CategoryMains,
		Stock:    stock,
	}
}

func checkTotals(t *testing.T, c *Cart) {
	t.Helper()
	st := c.State()
	amount := decimal.Zero
	count := 0
	for _, it := range st.Items {
		amount = amount.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	if !st.TotalAmount.Equal(amount) || st.TotalItems != count {
		t.Fatalf("totals drifted: %s/%d vs fold %s/%d", st.TotalAmount, st.TotalItems, amount, count)
	}
}

func TestAddUpdateScenario(t *testing.T) {
	c := New()
	a := item("A", 10, 5)

	res := c.Add(a, 3)
	if !res.Success {
		t.Fatalf("Add failed: %s", res.Message)
	}
	st := c.State()
	if !st.TotalAmount.Equal(decimal.NewFromInt(30)) || st.TotalItems != 3 {
		t.Fatalf("expected 30/3, got %s/%d", st.TotalAmount, st.TotalItems)
	}

	res = c.UpdateQuantity("A", 6)
	if res.Success || !errors.Is(res.Err, ErrInsufficientStock) {
		t.Fatalf("expected InsufficientStock, got %+v", res)
	}
	if c.Quantity("A") != 3 {
		t.Fatalf("cart changed on failed update: %d", c.Quantity("A"))
	}

	res = c.UpdateQuantity("A", 5)
	if !res.Success {
		t.Fatalf("UpdateQuantity failed: %s", res.Message)
	}
	if st := c.State(); !st.TotalAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected 50, got %s", st.TotalAmount)
	}
	checkTotals(t, c)
}

func TestAddRejectsUnavailable(t *testing.T) {
	c := New()
	res := c.Add(item("A", 10, 0), 1)
	if res.Success || !errors.Is(res.Err, ErrUnavailable) {
		t.Fatalf("expected Unavailable, got %+v", res)
	}
	if res.Message != "Item A is currently unavailable" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if !c.IsEmpty() {
		t.Fatal("cart mutated")
	}
}

func TestAddOverStockNeverMutates(t *testing.T) {
	c := New()
	res := c.Add(item("A", 10, 2), 3)
	if res.Success || !errors.Is(res.Err, ErrInsufficientStock) {
		t.Fatalf("expected InsufficientStock, got %+v", res)
	}
	if res.Message != "Only 2 Item A available in stock" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if !c.IsEmpty() {
		t.Fatal("cart mutated")
	}
}

func TestDuplicateAddOverflowFails(t *testing.T) {
	c := New()
	a := item("A", 10, 5)
	if res := c.Add(a, 4); !res.Success {
		t.Fatalf("Add failed: %s", res.Message)
	}

	res := c.Add(a, 2)
	if res.Success || !errors.Is(res.Err, ErrInsufficientStock) {
		t.Fatalf("expected InsufficientStock on overflow, got %+v", res)
	}
	if c.Quantity("A") != 4 {
		t.Fatalf("expected quantity to stay 4, got %d", c.Quantity("A"))
	}

	if res := c.Add(a, 1); !res.Success {
		t.Fatalf("Add to exactly stock failed: %s", res.Message)
	}
	if c.Quantity("A") != 5 {
		t.Fatalf("expected 5, got %d", c.Quantity("A"))
	}
	checkTotals(t, c)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	if res := c.Add(item("A", 10, 5), 0); res.Success || !errors.Is(res.Err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %+v", res)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	c := New()
	c.Add(item("A", 10, 5), 2)
	c.Add(item("B", 4, 5), 1)

	res := c.UpdateQuantity("A", 0)
	if !res.Success || res.Message != "Item removed from cart" {
		t.Fatalf("unexpected result %+v", res)
	}
	if c.Contains("A") {
		t.Fatal("A still in cart")
	}

	other := New()
	other.Add(item("A", 10, 5), 2)
	other.Add(item("B", 4, 5), 1)
	other.Remove("A")

	if got, want := c.State(), other.State(); !got.TotalAmount.Equal(want.TotalAmount) || got.TotalItems != want.TotalItems {
		t.Fatalf("UpdateQuantity(0) differs from Remove: %+v vs %+v", got, want)
	}
}

func TestUpdateQuantityMissing(t *testing.T) {
	c := New()
	res := c.UpdateQuantity("ghost", 2)
	if res.Success || !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected NotFound, got %+v", res)
	}
}

func TestInsertionOrderAndQueries(t *testing.T) {
	c := New()
	c.Add(item("B", 4, 5), 1)
	c.Add(item("A", 10, 5), 2)
	c.Add(item("B", 4, 5), 1)

	st := c.State()
	if len(st.Items) != 2 || st.Items[0].ID != "B" || st.Items[1].ID != "A" {
		t.Fatalf("unexpected order %+v", st.Items)
	}
	if c.Quantity("B") != 2 || c.Quantity("Z") != 0 {
		t.Fatalf("unexpected quantities")
	}
	if !c.Contains("A") || c.Contains("Z") {
		t.Fatal("Contains mismatch")
	}
	c.Remove("Z")
	checkTotals(t, c)

	c.Clear()
	if st := c.State(); len(st.Items) != 0 || !st.TotalAmount.IsZero() || st.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", st)
	}
}

func TestStateIsACopy(t *testing.T) {
	c := New()
	c.Add(item("A", 10, 5), 2)

	st := c.State()
	st.Items[0].Quantity = 99
	if c.Quantity("A") != 2 {
		t.Fatal("State leaked internal slice")
	}
}
