package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

// Valid reports whether s is one of the known sort orders.
func (s SortOrder) Valid() bool {
	switch s {
	case SortRelevance, SortPriceLow, SortPriceHigh, SortRating:
		return true
	}
	return false
}

type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// SearchFilters is the filter/sort configuration of one search.
type SearchFilters struct {
	PriceRange PriceRange
	Rating     int
	SortBy     SortOrder
}

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1000
)

// DefaultFilters returns the reset state: full price range,
// no rating threshold, relevance order.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		PriceRange: PriceRange{
			Min: decimal.NewFromInt(DefaultPriceMin),
			Max: decimal.NewFromInt(DefaultPriceMax),
		},
		Rating: 0,
		SortBy: SortRelevance,
	}
}

// A HistoryEntry is one committed search query.
type HistoryEntry struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}
