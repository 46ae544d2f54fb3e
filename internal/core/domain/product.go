package domain

import "github.com/shopspring/decimal"

// A Product is one catalog record. The catalog is generated once at
// process start and never mutated, so products are shared freely.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	Image       string
	Rating      int
}
