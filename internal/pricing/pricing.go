// Package pricing holds the money arithmetic shared by the cart, the order
// book and analytics. All amounts are decimal to avoid float drift in totals.
package pricing

import (
	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat rate applied to every order subtotal.
var TaxRate = decimal.NewFromFloat(0.10)

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Totals folds a list of cart lines into amount and item count.
func Totals(items []models.CartItem) (decimal.Decimal, int) {
	amount := decimal.Zero
	count := 0
	for _, it := range items {
		amount = amount.Add(LineTotal(it.Price, it.Quantity))
		count += it.Quantity
	}
	return amount, count
}

// Tax rounds to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

func Final(subtotal, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Sub(discount)
}

// Float converts for JSON and spreadsheet output.
func Float(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
