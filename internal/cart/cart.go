// Package cart is the per-session staging area for menu items. It enforces
// the per-item stock ceiling at mutation time and never touches the menu.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/pricing"
)

var (
	ErrUnavailable       = errors.New("item unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("item not in cart")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)

// Result is what every mutator returns. Message is meant to be shown to the
// customer as is; Err carries the sentinel for callers that branch on kind.
type Result struct {
	Success bool
	Message string
	Err     error
}

func ok(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(err error, format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...), Err: err}
}

type Cart struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of item in the cart. Adding to a line that is
// already present fails when the combined quantity would exceed item.Stock.
func (c *Cart) Add(item models.MenuItem, quantity int) Result {
	if quantity < 1 {
		return fail(ErrInvalidQuantity, "Quantity must be at least 1")
	}
	if !item.IsAvailable() {
		return fail(ErrUnavailable, "%s is currently unavailable", item.Name)
	}
	if item.Stock < quantity {
		return fail(ErrInsufficientStock, "Only %d %s available in stock", item.Stock, item.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(item.ID); i >= 0 {
		newQty := c.items[i].Quantity + quantity
		if newQty > item.Stock {
			return fail(ErrInsufficientStock, "Only %d %s available in stock (%d already in cart)",
				item.Stock, item.Name, c.items[i].Quantity)
		}
		// refresh the snapshot so later ceilings use the latest stock
		c.items[i] = models.CartItem{MenuItem: item.Clone(), Quantity: newQty}
	} else {
		c.items = append(c.items, models.CartItem{MenuItem: item.Clone(), Quantity: quantity})
	}

	return ok(fmt.Sprintf("%s added to cart", item.Name))
}

// UpdateQuantity sets the quantity of a line. Anything below 1 removes it.
func (c *Cart) UpdateQuantity(itemID string, quantity int) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.remove(itemID)
		return ok("Item removed from cart")
	}

	i := c.index(itemID)
	if i < 0 {
		return fail(ErrNotFound, "Item not found in cart")
	}
	if quantity > c.items[i].Stock {
		return fail(ErrInsufficientStock, "Only %d items available in stock", c.items[i].Stock)
	}

	c.items[i].Quantity = quantity
	return ok("Quantity updated")
}

// Remove is a no-op when the item is absent.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(itemID)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) Contains(itemID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index(itemID) >= 0
}

// Quantity returns 0 for items not in the cart.
func (c *Cart) Quantity(itemID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(itemID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// State returns a copy of the lines with totals folded from them.
func (c *Cart) State() models.CartState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.CartItem, len(c.items))
	for i, it := range c.items {
		items[i] = models.CartItem{MenuItem: it.MenuItem.Clone(), Quantity: it.Quantity}
	}
	amount, count := pricing.Totals(items)
	return models.CartState{Items: items, TotalAmount: amount, TotalItems: count}
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}

func (c *Cart) remove(itemID string) {
	if i := c.index(itemID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *Cart) index(itemID string) int {
	for i := range c.items {
		if c.items[i].ID == itemID {
			return i
		}
	}
	return -1
}
