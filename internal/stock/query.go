package stock

import (
	"math"
	"strings"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

type Filter string

const (
	FilterAll Filter = "all"
	FilterLow Filter = "low"
	FilterOut Filter = "out"
)

func (l *Ledger) LowStock() []models.StockItem {
	return l.filter(models.StockItem.IsLow)
}

func (l *Ledger) OutOfStock() []models.StockItem {
	return l.filter(models.StockItem.IsOut)
}

func (l *Ledger) ByCategory(category string) []models.StockItem {
	return l.filter(func(it models.StockItem) bool { return it.Category == category })
}

// Search matches name or category case-insensitively and applies the
// low/out filter. An unknown filter behaves like FilterAll.
func (l *Ledger) Search(query string, f Filter) []models.StockItem {
	q := strings.ToLower(strings.TrimSpace(query))
	return l.filter(func(it models.StockItem) bool {
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Category), q) {
			return false
		}
		switch f {
		case FilterLow:
			return it.IsLow()
		case FilterOut:
			return it.IsOut()
		}
		return true
	})
}

// LevelPercent is quantity as a share of the max threshold, capped at 100.
func LevelPercent(it models.StockItem) float64 {
	if it.MaxThreshold <= 0 {
		return 0
	}
	return math.Min(100, it.Quantity/it.MaxThreshold*100)
}

// SuggestedRestock pre-fills the restock form: 10 units or the remaining
// headroom, whichever is smaller.
func SuggestedRestock(it models.StockItem) float64 {
	return math.Max(0, math.Min(10, it.MaxThreshold-it.Quantity))
}
