package models

import "github.com/shopspring/decimal"

type CartItem struct {
	MenuItem
	Quantity int
}

type CartState struct {
	Items       []CartItem
	TotalAmount decimal.Decimal
	TotalItems  int
}
