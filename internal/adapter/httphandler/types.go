package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       string `json:"price"`
		Image       string `json:"image"`
		Rating      int    `json:"rating"`
	}

	CartLine struct {
		Product Product `json:"product"`
		Qty     int     `json:"qty"`
	}

	Cart struct {
		Lines     []CartLine `json:"lines"`
		Total     string     `json:"total"`
		ItemCount int        `json:"item_count"`
		PopupOpen bool       `json:"popup_open"`
	}

	HistoryEntry struct {
		Query     string    `json:"query"`
		Timestamp time.Time `json:"timestamp"`
	}

	ProductList struct {
		Products  []Product `json:"products"`
		Searching bool      `json:"searching"`
	}

	SearchRequest struct {
		Query    string `json:"query"`
		MinPrice string `json:"minPrice,omitempty"`
		MaxPrice string `json:"maxPrice,omitempty"`
		Rating   int    `json:"rating,omitempty"`
		Sort     string `json:"sort,omitempty"`
	}

	SearchCommitted struct {
		Location  string `json:"location"`
		Searching bool   `json:"searching"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
	}

	SetQtyRequest struct {
		Qty int `json:"qty"`
	}

	PopupRequest struct {
		Open bool `json:"open"`
	}

	Message struct {
		Message string `json:"message"`
	}
)

func toProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Rating:      p.Rating,
	}
}

func toProducts(ps []domain.Product) []Product {
	vs := make([]Product, 0, len(ps))
	for _, p := range ps {
		vs = append(vs, toProduct(p))
	}
	return vs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
