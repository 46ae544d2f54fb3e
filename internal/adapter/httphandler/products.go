package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// GET v1/products?q=&minPrice=&maxPrice=&rating=&sort= (200 OK)
// GET v1/products/{productID} (200 OK, 404 Not found)

type ProductsHandler struct {
	catalog  port.CatalogProvider
	searcher port.ProductSearcher
}

func RegisterProducts(
	r chi.Router, catalog port.CatalogProvider, searcher port.ProductSearcher,
) {
	h := ProductsHandler{catalog, searcher}
	r.Get("/products", h.ListProducts)
	r.Get("/products/{productID}", h.GetProduct)
}

func (h ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.ListProducts"
	log := slog.With("op", op)

	query, filters := service.DecodeLocation(r.URL.Query())
	ps := h.searcher.FilterAndRank(query, filters)

	writeJSON(w, http.StatusOK, ProductList{
		Products:  toProducts(ps),
		Searching: h.searcher.IsSearching(),
	})

	log.Info("listed", "query", query, "nProducts", len(ps))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	id := chi.URLParam(r, "productID")
	p, ok := h.catalog.ProductByID(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		log.Warn("unknown product", "productID", id)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(p))
}
