// Package stock tracks raw-ingredient inventory and its low/out alert feed.
// It is independent from menu-item stock and is never touched by orders.
package stock

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("stock item not found")
	ErrAlertNotFound = errors.New("stock alert not found")
	ErrInvalidItem   = errors.New("invalid stock item")
	ErrInvalidAmount = errors.New("invalid amount")
)

type Ledger struct {
	mu     sync.RWMutex
	items  []models.StockItem
	alerts []models.StockAlert
	seq    int
	now    func() time.Time
}

// NewLedger copies items and builds the initial alert feed. A nil now uses
// time.Now.
func NewLedger(items []models.StockItem, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	l := &Ledger{
		items: append([]models.StockItem(nil), items...),
		now:   now,
	}
	for _, it := range l.items {
		l.seq = max(l.seq, idNumber(it.ID))
	}
	l.alerts = generateAlerts(l.items, now())
	return l
}

func generateAlerts(items []models.StockItem, at time.Time) []models.StockAlert {
	var alerts []models.StockAlert
	for _, it := range items {
		var typ models.StockAlertType
		switch {
		case it.IsOut():
			typ = models.StockAlertOut
		case it.IsLow():
			typ = models.StockAlertLow
		default:
			continue
		}
		alerts = append(alerts, models.StockAlert{
			ID:           fmt.Sprintf("ALT-%s-%s", it.ID, strings.ToUpper(string(typ))),
			ItemID:       it.ID,
			ItemName:     it.Name,
			CurrentStock: it.Quantity,
			MinThreshold: it.MinThreshold,
			AlertType:    typ,
			CreatedAt:    at,
		})
	}
	return alerts
}

// idNumber extracts N from "STK-N", or 0.
func idNumber(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "STK-"))
	if err != nil || !strings.HasPrefix(id, "STK-") {
		return 0
	}
	return n
}

func (l *Ledger) Items() []models.StockItem {
	return l.filter(func(models.StockItem) bool { return true })
}

func (l *Ledger) Get(id string) (models.StockItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return models.StockItem{}, false
}

// UpdateQuantity sets the quantity, floored at zero. There is no upper bound
// here; only Restock clamps to the max threshold. Alerts are not regenerated.
func (l *Ledger) UpdateQuantity(id string, quantity float64) (models.StockItem, error) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return models.StockItem{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return models.StockItem{}, ErrNotFound
	}
	l.items[i].Quantity = math.Max(0, quantity)
	return l.items[i], nil
}

// Restock adds amount up to the max threshold, stamps the restock date and
// drops every alert for the item.
func (l *Ledger) Restock(id string, amount float64) (models.StockItem, error) {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return models.StockItem{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return models.StockItem{}, ErrNotFound
	}
	it := &l.items[i]
	it.Quantity = math.Min(it.MaxThreshold, it.Quantity+amount)
	it.LastRestocked = l.now()
	l.dropAlerts(id)
	return *it, nil
}

// Add assigns the next STK-NNN id and appends the item.
func (l *Ledger) Add(item models.StockItem) (models.StockItem, error) {
	if err := validate(item); err != nil {
		return models.StockItem{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		l.seq++
		item.ID = fmt.Sprintf("STK-%03d", l.seq)
		if l.index(item.ID) < 0 {
			break
		}
	}
	if item.LastRestocked.IsZero() {
		item.LastRestocked = l.now()
	}
	l.items = append(l.items, item)
	return item, nil
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Name         *string
	Category     *string
	Quantity     *float64
	Unit         *string
	MinThreshold *float64
	MaxThreshold *float64
	Supplier     *string
	CostPerUnit  *decimal.Decimal
}

func (l *Ledger) Update(id string, p Patch) (models.StockItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return models.StockItem{}, ErrNotFound
	}

	it := l.items[i]
	if p.Name != nil {
		it.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		it.Category = strings.TrimSpace(*p.Category)
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		it.Unit = strings.TrimSpace(*p.Unit)
	}
	if p.MinThreshold != nil {
		it.MinThreshold = *p.MinThreshold
	}
	if p.MaxThreshold != nil {
		it.MaxThreshold = *p.MaxThreshold
	}
	if p.Supplier != nil {
		it.Supplier = strings.TrimSpace(*p.Supplier)
	}
	if p.CostPerUnit != nil {
		it.CostPerUnit = *p.CostPerUnit
	}
	if err := validate(it); err != nil {
		return models.StockItem{}, err
	}

	l.items[i] = it
	return it, nil
}

// Delete removes the item and its alerts.
func (l *Ledger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.dropAlerts(id)
	return nil
}

func validate(it models.StockItem) error {
	switch {
	case strings.TrimSpace(it.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case strings.TrimSpace(it.Unit) == "":
		return fmt.Errorf("%w: unit is required", ErrInvalidItem)
	case it.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidItem)
	case it.MinThreshold < 0 || it.MaxThreshold <= 0:
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidItem)
	case it.MinThreshold > it.MaxThreshold:
		return fmt.Errorf("%w: min threshold above max threshold", ErrInvalidItem)
	case it.CostPerUnit.IsNegative():
		return fmt.Errorf("%w: cost per unit cannot be negative", ErrInvalidItem)
	}
	return nil
}

func (l *Ledger) index(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) filter(keep func(models.StockItem) bool) []models.StockItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.StockItem, 0, len(l.items))
	for _, it := range l.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
