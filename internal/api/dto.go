package api

import (
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/orders"
	"github.com/JawwadIrshad/Resturant-App/internal/pricing"
	"github.com/JawwadIrshad/Resturant-App/internal/stock"
)

type MenuItemResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Category    models.MenuCategory `json:"category"`
	Image       string              `json:"image"`
	Stock       int                 `json:"stock"`
	IsAvailable bool                `json:"is_available"`
	IsFeatured  bool                `json:"is_featured"`
	PrepTime    int                 `json:"prep_time,omitempty"`
	Calories    int                 `json:"calories,omitempty"`
	Allergens   []string            `json:"allergens,omitempty"`
}

func toMenuItemResponse(m models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       pricing.Float(m.Price),
		Category:    m.Category,
		Image:       m.Image,
		Stock:       m.Stock,
		IsAvailable: m.IsAvailable(),
		IsFeatured:  m.IsFeatured,
		PrepTime:    m.PrepTime,
		Calories:    m.Calories,
		Allergens:   m.Allergens,
	}
}

func toMenuItemResponses(items []models.MenuItem) []MenuItemResponse {
	res := make([]MenuItemResponse, 0, len(items))
	for _, m := range items {
		res = append(res, toMenuItemResponse(m))
	}
	return res
}

type CartItemResponse struct {
	MenuItemResponse
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
}

func toCartItemResponses(items []models.CartItem) []CartItemResponse {
	res := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		res = append(res, CartItemResponse{
			MenuItemResponse: toMenuItemResponse(it.MenuItem),
			Quantity:         it.Quantity,
			LineTotal:        pricing.Float(pricing.LineTotal(it.Price, it.Quantity)),
		})
	}
	return res
}

func toCartResponse(s models.CartState) CartResponse {
	return CartResponse{
		Items:       toCartItemResponses(s.Items),
		TotalAmount: pricing.Float(s.TotalAmount),
		TotalItems:  s.TotalItems,
	}
}

type OrderResponse struct {
	ID            string               `json:"id"`
	Items         []CartItemResponse   `json:"items"`
	TotalAmount   float64              `json:"total_amount"`
	Tax           float64              `json:"tax"`
	Discount      float64              `json:"discount"`
	FinalAmount   float64              `json:"final_amount"`
	Status        models.OrderStatus   `json:"status"`
	NextStatus    models.OrderStatus   `json:"next_status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	TableNumber   string               `json:"table_number,omitempty"`
	OrderType     models.OrderType     `json:"order_type"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
	EstimatedTime int                  `json:"estimated_time"`
}

func toOrderResponse(o models.Order) OrderResponse {
	next, _ := orders.NextStatus(o.Status)
	return OrderResponse{
		ID:            o.ID,
		Items:         toCartItemResponses(o.Items),
		TotalAmount:   pricing.Float(o.TotalAmount),
		Tax:           pricing.Float(o.Tax),
		Discount:      pricing.Float(o.Discount),
		FinalAmount:   pricing.Float(o.FinalAmount),
		Status:        o.Status,
		NextStatus:    next,
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TableNumber:   o.TableNumber,
		OrderType:     o.OrderType,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.Format(time.RFC3339),
		EstimatedTime: o.EstimatedTime,
	}
}

func toOrderResponses(list []models.Order) []OrderResponse {
	res := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		res = append(res, toOrderResponse(o))
	}
	return res
}

type StockItemResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Quantity         float64 `json:"quantity"`
	Unit             string  `json:"unit"`
	MinThreshold     float64 `json:"min_threshold"`
	MaxThreshold     float64 `json:"max_threshold"`
	LastRestocked    string  `json:"last_restocked"`
	Supplier         string  `json:"supplier"`
	CostPerUnit      float64 `json:"cost_per_unit"`
	Status           string  `json:"status"`
	LevelPercent     float64 `json:"level_percent"`
	SuggestedRestock float64 `json:"suggested_restock"`
}

func stockStatus(it models.StockItem) string {
	switch {
	case it.IsOut():
		return "out"
	case it.IsLow():
		return "low"
	}
	return "ok"
}

func toStockItemResponse(it models.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:               it.ID,
		Name:             it.Name,
		Category:         it.Category,
		Quantity:         it.Quantity,
		Unit:             it.Unit,
		MinThreshold:     it.MinThreshold,
		MaxThreshold:     it.MaxThreshold,
		LastRestocked:    it.LastRestocked.Format("2006-01-02"),
		Supplier:         it.Supplier,
		CostPerUnit:      pricing.Float(it.CostPerUnit),
		Status:           stockStatus(it),
		LevelPercent:     stock.LevelPercent(it),
		SuggestedRestock: stock.SuggestedRestock(it),
	}
}

func toStockItemResponses(items []models.StockItem) []StockItemResponse {
	res := make([]StockItemResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toStockItemResponse(it))
	}
	return res
}

type StockAlertResponse struct {
	ID           string                `json:"id"`
	ItemID       string                `json:"item_id"`
	ItemName     string                `json:"item_name"`
	CurrentStock float64               `json:"current_stock"`
	MinThreshold float64               `json:"min_threshold"`
	AlertType    models.StockAlertType `json:"alert_type"`
	CreatedAt    string                `json:"created_at"`
	IsRead       bool                  `json:"is_read"`
}

func toStockAlertResponses(alerts []models.StockAlert) []StockAlertResponse {
	res := make([]StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		res = append(res, StockAlertResponse{
			ID:           a.ID,
			ItemID:       a.ItemID,
			ItemName:     a.ItemName,
			CurrentStock: a.CurrentStock,
			MinThreshold: a.MinThreshold,
			AlertType:    a.AlertType,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
			IsRead:       a.IsRead,
		})
	}
	return res
}

type ChatMessageResponse struct {
	ID          string          `json:"id"`
	Role        models.ChatRole `json:"role"`
	Content     string          `json:"content"`
	Timestamp   string          `json:"timestamp"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

func toChatMessageResponse(m models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:          m.ID,
		Role:        m.Role,
		Content:     m.Content,
		Timestamp:   m.Timestamp.Format(time.RFC3339),
		Suggestions: m.Suggestions,
	}
}
