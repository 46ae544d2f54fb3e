package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST   v1/search JSON {query, minPrice?, maxPrice?, rating?, sort?} (200 OK, 400 Bad request)
// GET    v1/search/suggestions?q= (200 OK)
// GET    v1/search/history (200 OK)
// DELETE v1/search/history (204 No content)
// DELETE v1/search (204 No content)

type SearchHandler struct {
	searcher port.ProductSearcher
}

func RegisterSearch(r chi.Router, searcher port.ProductSearcher) {
	h := SearchHandler{searcher}
	r.Post("/search", h.CommitSearch)
	r.Delete("/search", h.ClearSearch)
	r.Get("/search/suggestions", h.Suggestions)
	r.Get("/search/history", h.GetHistory)
	r.Delete("/search/history", h.ClearHistory)
}

func (h SearchHandler) CommitSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.CommitSearch"
	log := slog.With("op", op)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	query, filters := service.DecodeLocation(req.toLocation())
	loc := h.searcher.CommitSearch(query, filters)

	path := "/products"
	if encoded := loc.Encode(); encoded != "" {
		path += "?" + encoded
	}

	writeJSON(w, http.StatusOK, SearchCommitted{
		Location:  path,
		Searching: h.searcher.IsSearching(),
	})

	log.Info("search committed", "query", query)
}

func (h SearchHandler) ClearSearch(w http.ResponseWriter, _ *http.Request) {
	h.searcher.ClearSearch()
	w.WriteHeader(http.StatusNoContent)
}

func (h SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	vs := h.searcher.Suggestions(r.URL.Query().Get("q"))
	if vs == nil {
		vs = []string{}
	}
	writeJSON(w, http.StatusOK, vs)
}

func (h SearchHandler) GetHistory(w http.ResponseWriter, _ *http.Request) {
	es := h.searcher.History()
	vs := make([]HistoryEntry, 0, len(es))
	for _, e := range es {
		vs = append(vs, HistoryEntry{Query: e.Query, Timestamp: e.Timestamp})
	}
	writeJSON(w, http.StatusOK, vs)
}

func (h SearchHandler) ClearHistory(w http.ResponseWriter, _ *http.Request) {
	h.searcher.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (req SearchRequest) toLocation() url.Values {
	v := url.Values{}
	v.Set("q", req.Query)
	if req.MinPrice != "" {
		v.Set("minPrice", req.MinPrice)
	}
	if req.MaxPrice != "" {
		v.Set("maxPrice", req.MaxPrice)
	}
	if req.Rating > 0 {
		v.Set("rating", strconv.Itoa(req.Rating))
	}
	if req.Sort != "" {
		v.Set("sort", req.Sort)
	}
	return v
}
