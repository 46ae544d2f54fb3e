package port

import (
	"errors"
	"net/url"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by KVStore implementations for absent keys.
var ErrNotFound = errors.New("key not found")

// CatalogProvider exposes the fixed, read-only product catalog.
// Implementations guarantee a stable iteration order.
type CatalogProvider interface {
	Products() []domain.Product
	ProductByID(id string) (domain.Product, bool)
}

// CartAggregator owns the cart lines. Derived values are computed
// fresh on every read.
type CartAggregator interface {
	Add(p domain.Product)
	SetQty(id string, qty int)
	Remove(id string)
	Clear()
	Lines() []domain.CartLine
	Total() decimal.Decimal
	ItemCount() int
}

// ProductSearcher filters and ranks the catalog and owns the
// committed query/filter state and the bounded search history.
type ProductSearcher interface {
	FilterAndRank(query string, f domain.SearchFilters) []domain.Product
	Suggestions(partial string) []string
	RecordHistory(query string)
	ClearHistory()
	History() []domain.HistoryEntry
	CommitSearch(query string, f domain.SearchFilters) url.Values
	RestoreLocation(v url.Values)
	ClearSearch()
	Query() string
	Filters() domain.SearchFilters
	IsSearching() bool
}

// KVStore is the minimal durable key-value surface the search
// history is persisted through. Get returns ErrNotFound for keys
// that were never set or were deleted.
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
