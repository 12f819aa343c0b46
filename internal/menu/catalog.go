// Package menu owns the orderable items and their per-dish stock counters.
// Menu stock is separate from the ingredient ledger in package stock.
package menu

import (
	"errors"
	"strings"
	"sync"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

var (
	ErrNotFound      = errors.New("menu item not found")
	ErrInvalidAmount = errors.New("amount must be at least 1")
)

type Catalog struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

// NewCatalog copies items, so seeds can be shared between sessions.
func NewCatalog(items []models.MenuItem) *Catalog {
	c := &Catalog{items: make([]models.MenuItem, 0, len(items))}
	for _, it := range items {
		c.items = append(c.items, it.Clone())
	}
	return c
}

func (c *Catalog) Items() []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(models.MenuItem) bool { return true })
}

func (c *Catalog) Get(id string) (models.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i].Clone(), true
	}
	return models.MenuItem{}, false
}

// Categories returns "all" followed by each category in first-seen order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[models.MenuCategory]bool)
	out := []string{models.CategoryAll}
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, string(it.Category))
		}
	}
	return out
}

func (c *Catalog) Featured() []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(it models.MenuItem) bool { return it.IsFeatured })
}

func (c *Catalog) ByCategory(category models.MenuCategory) []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(it models.MenuItem) bool { return it.Category == category })
}

// Filter matches category ("all" or empty is a wildcard) and a case-insensitive
// substring of name or description.
func (c *Catalog) Filter(category, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(it models.MenuItem) bool {
		if category != "" && category != models.CategoryAll && string(it.Category) != category {
			return false
		}
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q)
	})
}

// UpdateItemStock sets the stock, clamped at zero.
func (c *Catalog) UpdateItemStock(id string, stock int) (models.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return models.MenuItem{}, ErrNotFound
	}
	c.items[i].Stock = max(0, stock)
	return c.items[i].Clone(), nil
}

// DecrementStock lowers the stock by amount, never below zero. It cannot be
// used to add stock.
func (c *Catalog) DecrementStock(id string, amount int) (models.MenuItem, error) {
	if amount < 1 {
		return models.MenuItem{}, ErrInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return models.MenuItem{}, ErrNotFound
	}
	c.items[i].Stock = max(0, c.items[i].Stock-amount)
	return c.items[i].Clone(), nil
}

// Upsert replaces items with a matching id and appends the rest.
func (c *Catalog) Upsert(items []models.MenuItem) (added, updated int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range items {
		if i := c.index(it.ID); i >= 0 {
			c.items[i] = it.Clone()
			updated++
			continue
		}
		c.items = append(c.items, it.Clone())
		added++
	}
	return added, updated
}

func (c *Catalog) index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) collect(keep func(models.MenuItem) bool) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}
