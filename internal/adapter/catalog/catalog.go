package catalog

import (
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CatalogProvider = (*Store)(nil)

const (
	priceMin = 10
	priceMax = 500

	imageWidth  = 300
	imageHeight = 300
)

// Store is the fixed product catalog: generated once at startup,
// read-only afterwards, stable iteration order.
type Store struct {
	products []domain.Product
	byID     map[string]int
}

// Generate builds a catalog of size products from a seeded
// pseudo-random source. Seed 0 picks a random seed. Product ids are
// unique for the process lifetime.
func Generate(size int, seed uint64) Store {
	const op = "catalog.Generate"

	faker := gofakeit.New(seed)

	ps := make([]domain.Product, 0, size)
	byID := make(map[string]int, size)
	for i := 0; i < size; i++ {
		p := domain.Product{
			ID:          uuid.NewString(),
			Title:       faker.ProductName(),
			Description: faker.ProductDescription(),
			Price:       randomPrice(faker),
			Image:       faker.ImageURL(imageWidth, imageHeight),
			Rating:      faker.Number(1, 5),
		}
		byID[p.ID] = i
		ps = append(ps, p)
	}

	slog.Info("catalog is generated", "op", op, "nProducts", len(ps))
	return Store{products: ps, byID: byID}
}

// FromProducts wraps a fixed product list, checking id uniqueness.
func FromProducts(ps []domain.Product) (Store, error) {
	const op = "catalog.FromProducts"

	byID := make(map[string]int, len(ps))
	for i, p := range ps {
		if _, ok := byID[p.ID]; ok {
			return Store{}, fmt.Errorf("%s: duplicate product id %q", op, p.ID)
		}
		byID[p.ID] = i
	}
	return Store{products: ps, byID: byID}, nil
}

// Products returns the catalog in generation order. Callers must
// treat the returned slice as read-only.
func (s Store) Products() []domain.Product {
	return s.products
}

func (s Store) ProductByID(id string) (domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func randomPrice(faker *gofakeit.Faker) decimal.Decimal {
	return decimal.NewFromFloat(faker.Price(priceMin, priceMax)).Round(2)
}
