package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockItem struct {
	ID            string
	Name          string
	Category      string
	Quantity      float64
	Unit          string
	MinThreshold  float64
	MaxThreshold  float64
	LastRestocked time.Time
	Supplier      string
	CostPerUnit   decimal.Decimal
}

func (s StockItem) IsOut() bool {
	return s.Quantity == 0
}

func (s StockItem) IsLow() bool {
	return s.Quantity > 0 && s.Quantity < s.MinThreshold
}

type StockAlertType string

const (
	StockAlertLow      StockAlertType = "low"
	StockAlertOut      StockAlertType = "out"
	StockAlertExpiring StockAlertType = "expiring"
)

type StockAlert struct {
	ID           string
	ItemID       string
	ItemName     string
	CurrentStock float64
	MinThreshold float64
	AlertType    StockAlertType
	CreatedAt    time.Time
	IsRead       bool
}
