// Package orders turns cart snapshots into order records and drives them
// through the kitchen pipeline.
package orders

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/pricing"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidOrder      = errors.New("invalid order")
)

const (
	// DefaultPrepTime is used for items that carry no prep time.
	DefaultPrepTime = 20
	// MinEstimatedTime is the floor for an order's estimate.
	MinEstimatedTime = 15
)

type CreateOrderInput struct {
	Items         []models.CartItem
	CustomerName  string
	CustomerPhone string
	TableNumber   string
	OrderType     models.OrderType
	PaymentMethod models.PaymentMethod
	Notes         string
}

type Book struct {
	mu     sync.RWMutex
	orders []*models.Order // newest first
	seq    int
	now    func() time.Time
}

// NewBook returns an empty book. A nil now uses time.Now.
func NewBook(now func() time.Time) *Book {
	if now == nil {
		now = time.Now
	}
	return &Book{now: now}
}

// Create records a new pending order. Items are copied, so later cart edits
// never reach the order.
func (b *Book) Create(in CreateOrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	if !in.OrderType.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown order type %q", ErrInvalidOrder, in.OrderType)
	}
	if !in.PaymentMethod.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, in.PaymentMethod)
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%w: %s has quantity %d", ErrInvalidOrder, it.ID, it.Quantity)
		}
	}

	items := make([]models.CartItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = models.CartItem{MenuItem: it.MenuItem.Clone(), Quantity: it.Quantity}
	}

	total, _ := pricing.Totals(items)
	tax := pricing.Tax(total)
	discount := decimal.Zero

	paymentStatus := models.PaymentStatusPaid
	if in.PaymentMethod == models.PaymentMethodCash {
		paymentStatus = models.PaymentStatusPending
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	now := b.now()
	o := &models.Order{
		ID:            fmt.Sprintf("ORD-%03d", b.seq),
		Items:         items,
		TotalAmount:   total,
		Tax:           tax,
		Discount:      discount,
		FinalAmount:   pricing.Final(total, tax, discount),
		Status:        models.OrderStatusPending,
		PaymentStatus: paymentStatus,
		PaymentMethod: in.PaymentMethod,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		TableNumber:   in.TableNumber,
		OrderType:     in.OrderType,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
		EstimatedTime: EstimatedTime(items),
	}

	b.orders = append([]*models.Order{o}, b.orders...)
	return o.Clone(), nil
}

// EstimatedTime is the slowest item's prep time, never below the floor.
func EstimatedTime(items []models.CartItem) int {
	est := MinEstimatedTime
	for _, it := range items {
		t := it.PrepTime
		if t <= 0 {
			t = DefaultPrepTime
		}
		est = max(est, t)
	}
	return est
}

// UpdateStatus moves an order along the pipeline. Illegal moves leave the
// order untouched and return ErrInvalidTransition.
func (b *Book) UpdateStatus(id string, status models.OrderStatus) (models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o := b.find(id)
	if o == nil {
		return models.Order{}, ErrNotFound
	}
	if err := validateStatusTransition(o.Status, status); err != nil {
		return models.Order{}, err
	}
	o.Status = status
	o.UpdatedAt = b.now()
	return o.Clone(), nil
}

// Advance moves the order to its pipeline successor.
func (b *Book) Advance(id string) (models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o := b.find(id)
	if o == nil {
		return models.Order{}, ErrNotFound
	}
	next, ok := NextStatus(o.Status)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, o.Status)
	}
	o.Status = next
	o.UpdatedAt = b.now()
	return o.Clone(), nil
}

func (b *Book) Cancel(id string) (models.Order, error) {
	return b.UpdateStatus(id, models.OrderStatusCancelled)
}

// UpdatePaymentStatus overwrites the payment status in any order status.
func (b *Book) UpdatePaymentStatus(id string, status models.PaymentStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown payment status %q", ErrInvalidStatus, status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	o := b.find(id)
	if o == nil {
		return models.Order{}, ErrNotFound
	}
	o.PaymentStatus = status
	o.UpdatedAt = b.now()
	return o.Clone(), nil
}

func (b *Book) Get(id string) (models.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if o := b.find(id); o != nil {
		return o.Clone(), true
	}
	return models.Order{}, false
}

// All returns every order, most recent first.
func (b *Book) All() []models.Order {
	return b.filter(func(*models.Order) bool { return true })
}

func (b *Book) ByStatus(status models.OrderStatus) []models.Order {
	return b.filter(func(o *models.Order) bool { return o.Status == status })
}

// Today returns orders created on the current calendar date.
func (b *Book) Today() []models.Order {
	now := b.now()
	y, m, d := now.Date()
	return b.filter(func(o *models.Order) bool {
		oy, om, od := o.CreatedAt.In(now.Location()).Date()
		return oy == y && om == m && od == d
	})
}

// Pending returns orders still waiting on the kitchen.
func (b *Book) Pending() []models.Order {
	return b.filter(func(o *models.Order) bool {
		return o.Status == models.OrderStatusPending || o.Status == models.OrderStatusPreparing
	})
}

// KitchenQueue returns pending, preparing and ready orders, oldest first.
func (b *Book) KitchenQueue() []models.Order {
	out := b.filter(func(o *models.Order) bool {
		switch o.Status {
		case models.OrderStatusPending, models.OrderStatusPreparing, models.OrderStatusReady:
			return true
		}
		return false
	})
	// the book is newest first; flip it so same-instant orders keep placement order
	slices.Reverse(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// StatusCounts counts orders per status, including zero entries.
func (b *Book) StatusCounts() map[models.OrderStatus]int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		counts[s] = 0
	}
	for _, o := range b.orders {
		counts[o.Status]++
	}
	return counts
}

func (b *Book) find(id string) *models.Order {
	for _, o := range b.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (b *Book) filter(keep func(*models.Order) bool) []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Order, 0, len(b.orders))
	for _, o := range b.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}
