package models

import "github.com/shopspring/decimal"

type MenuCategory string

const (
	CategoryStarters MenuCategory = "starters"
	CategoryMains    MenuCategory = "mains"
	CategoryDesserts MenuCategory = "desserts"
	CategoryDrinks   MenuCategory = "drinks"
)

// CategoryAll is the wildcard used by menu filters.
const CategoryAll = "all"

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryStarters, CategoryMains, CategoryDesserts, CategoryDrinks:
		return true
	}
	return false
}

type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    MenuCategory
	Image       string
	Stock       int
	IsFeatured  bool

	// Optional metadata, zero means not set
	PrepTime  int
	Calories  int
	Allergens []string
}

// IsAvailable is derived from stock and cannot be set independently.
func (m MenuItem) IsAvailable() bool {
	return m.Stock > 0
}

// Clone copies the item including its allergen slice.
func (m MenuItem) Clone() MenuItem {
	if m.Allergens != nil {
		m.Allergens = append([]string(nil), m.Allergens...)
	}
	return m
}
