package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/port"
)

// NewRouter mounts the storefront API under /v1.
func NewRouter(
	catalog port.CatalogProvider,
	cart port.CartAggregator,
	searcher port.ProductSearcher,
) http.Handler {
	r := chi.NewRouter()
	r.Use(AllowJSON)

	r.Route("/v1", func(v1 chi.Router) {
		RegisterProducts(v1, catalog, searcher)
		RegisterSearch(v1, searcher)
		RegisterCart(v1, catalog, cart)
	})

	return r
}
