package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET    v1/cart (200 OK)
// POST   v1/cart/items JSON {product_id} (201 Created, 400 Bad request, 404 Not found)
// PUT    v1/cart/items/{productID} JSON {qty} (200 OK, 400 Bad request)
// DELETE v1/cart/items/{productID} (200 OK)
// DELETE v1/cart (200 OK)
// POST   v1/cart/checkout (200 OK)
// PUT    v1/cart/popup JSON {open} (200 OK, 400 Bad request)

// CartHandler renders the cart aggregator over HTTP. The popup flag
// is transient UI state owned here, never by the cart itself.
type CartHandler struct {
	catalog port.CatalogProvider
	cart    port.CartAggregator

	mu        sync.Mutex
	popupOpen bool
}

func RegisterCart(
	r chi.Router, catalog port.CatalogProvider, cart port.CartAggregator,
) {
	h := &CartHandler{catalog: catalog, cart: cart}
	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{productID}", h.SetQty)
	r.Delete("/cart/items/{productID}", h.RemoveItem)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/checkout", h.Checkout)
	r.Put("/cart/popup", h.SetPopup)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, ok := h.catalog.ProductByID(req.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		log.Warn("unknown product", "productID", req.ProductID)
		return
	}

	h.cart.Add(p)
	writeJSON(w, http.StatusCreated, h.snapshot())

	log.Info("added", "productID", p.ID, "itemCount", h.cart.ItemCount())
}

func (h *CartHandler) SetQty(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQty"
	log := slog.With("op", op)

	var req SetQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.SetQty(chi.URLParam(r, "productID"), req.Qty)
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, _ *http.Request) {
	h.cart.Clear()
	writeJSON(w, http.StatusOK, h.snapshot())
}

// Checkout empties the cart and closes the popup. There is no
// payment or inventory behind it.
func (h *CartHandler) Checkout(w http.ResponseWriter, _ *http.Request) {
	const op = "CartHandler.Checkout"
	log := slog.With("op", op)

	n := h.cart.ItemCount()
	h.cart.Clear()
	h.setPopup(false)

	writeJSON(w, http.StatusOK, Message{"Thank you for your order!"})
	log.Info("checked out", "nItems", n)
}

func (h *CartHandler) SetPopup(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetPopup"
	log := slog.With("op", op)

	var req PopupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.setPopup(req.Open)
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) setPopup(open bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.popupOpen = open
}

func (h *CartHandler) snapshot() Cart {
	lines := h.cart.Lines()
	vs := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		vs = append(vs, toCartLine(l))
	}

	h.mu.Lock()
	popup := h.popupOpen
	h.mu.Unlock()

	return Cart{
		Lines:     vs,
		Total:     h.cart.Total().StringFixed(2),
		ItemCount: h.cart.ItemCount(),
		PopupOpen: popup,
	}
}

func toCartLine(l domain.CartLine) CartLine {
	return CartLine{Product: toProduct(l.Product), Qty: l.Qty}
}
