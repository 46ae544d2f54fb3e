package domain

import "github.com/shopspring/decimal"

// A CartLine aggregates one product with its ordered quantity.
// At most one line exists per product id.
type CartLine struct {
	Product Product
	Qty     int
}

// LineTotal is Price multiplied by Qty, exact.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}
