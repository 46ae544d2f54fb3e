package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.ProductSearcher = (*SearchService)(nil)

const (
	// historyKey is the fixed namespaced record the persisted
	// history lives under.
	historyKey = "storefront:search-history"

	historyLimit     = 10
	suggestionsLimit = 8
	minPartialLen    = 2
)

// SearchService filters and ranks the catalog, owns the committed
// query/filter state and the bounded, persisted search history.
//
// Storage failures and corrupt persisted data degrade to an empty
// history and are never returned to callers.
type SearchService struct {
	catalog        port.CatalogProvider
	kv             port.KVStore
	clock          clockwork.Clock
	searchingDelay time.Duration

	mu        sync.Mutex
	history   []domain.HistoryEntry
	query     string
	filters   domain.SearchFilters
	searching bool
	searchSeq uint64
}

func NewSearchService(
	catalog port.CatalogProvider,
	kv port.KVStore,
	clock clockwork.Clock,
	searchingDelay time.Duration,
) *SearchService {
	s := &SearchService{
		catalog:        catalog,
		kv:             kv,
		clock:          clock,
		searchingDelay: searchingDelay,
		filters:        domain.DefaultFilters(),
	}
	s.loadHistory()
	return s
}

// FilterAndRank returns the catalog view for query and f.
//
// A product matches a non-blank query if its lowercased
// title+description contains the full query verbatim or every
// whitespace-split term. Relevance order applies only with a
// non-blank query: title-contains above title-not-containing, exact
// title equality above partial, catalog order as the final tiebreak.
// Price bounds are inclusive. Explicit sorts are stable.
func (s *SearchService) FilterAndRank(
	query string, f domain.SearchFilters,
) []domain.Product {
	catalog := s.catalog.Products()
	results := make([]domain.Product, len(catalog))
	copy(results, catalog)

	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		terms := strings.Fields(q)
		matched := results[:0]
		for _, p := range results {
			text := strings.ToLower(p.Title + " " + p.Description)
			if strings.Contains(text, q) || containsAll(text, terms) {
				matched = append(matched, p)
			}
		}
		results = matched

		if f.SortBy == domain.SortRelevance {
			sort.SliceStable(results, func(i, j int) bool {
				return relevanceLess(results[i], results[j], q)
			})
		}
	}

	filtered := results[:0]
	for _, p := range results {
		inRange := p.Price.Cmp(f.PriceRange.Min) >= 0 &&
			p.Price.Cmp(f.PriceRange.Max) <= 0
		if inRange && p.Rating >= f.Rating {
			filtered = append(filtered, p)
		}
	}
	results = filtered

	if f.SortBy != domain.SortRelevance || q == "" {
		switch f.SortBy {
		case domain.SortPriceLow:
			sort.SliceStable(results, func(i, j int) bool {
				return results[i].Price.LessThan(results[j].Price)
			})
		case domain.SortPriceHigh:
			sort.SliceStable(results, func(i, j int) bool {
				return results[j].Price.LessThan(results[i].Price)
			})
		case domain.SortRating:
			sort.SliceStable(results, func(i, j int) bool {
				return results[i].Rating > results[j].Rating
			})
		}
	}

	return results
}

func containsAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

func relevanceLess(a, b domain.Product, q string) bool {
	aTitle := strings.ToLower(a.Title)
	bTitle := strings.ToLower(b.Title)

	aContains := strings.Contains(aTitle, q)
	bContains := strings.Contains(bTitle, q)
	if aContains != bContains {
		return aContains
	}

	aExact := aTitle == q
	bExact := bTitle == q
	if aExact != bExact {
		return aExact
	}
	return false
}

// Suggestions collects lowercased title words prefixed by partial
// (longer than two characters) and full titles containing it, deduped
// by exact string in catalog discovery order, capped at 8. Partial
// queries shorter than two characters after trimming yield nothing.
func (s *SearchService) Suggestions(partial string) []string {
	q := strings.ToLower(strings.TrimSpace(partial))
	if utf8.RuneCountInString(q) < minPartialLen {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, p := range s.catalog.Products() {
		titleLower := strings.ToLower(p.Title)
		for _, w := range strings.Fields(titleLower) {
			if strings.HasPrefix(w, q) && len(w) > 2 {
				add(w)
			}
		}
		if strings.Contains(titleLower, q) {
			add(p.Title)
		}
	}

	if len(out) > suggestionsLimit {
		out = out[:suggestionsLimit]
	}
	return out
}

// RecordHistory moves query to the front of the history, stamped
// with the current time, dropping any older entry with the same
// trimmed text and truncating to the 10 most recent. The full
// history is persisted on every mutation. Blank queries are ignored.
func (s *SearchService) RecordHistory(query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	es := make([]domain.HistoryEntry, 0, len(s.history)+1)
	es = append(es, domain.HistoryEntry{Query: q, Timestamp: s.clock.Now()})
	for _, e := range s.history {
		if e.Query != q {
			es = append(es, e)
		}
	}
	if len(es) > historyLimit {
		es = es[:historyLimit]
	}
	s.history = es
	s.persistHistory()
}

// ClearHistory empties the history and removes the persisted record.
func (s *SearchService) ClearHistory() {
	const op = "SearchService.ClearHistory"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	if err := s.kv.Delete(historyKey); err != nil {
		slog.Warn("failed to remove search history", "op", op, "err", err)
	}
}

// History returns a most-recent-first snapshot.
func (s *SearchService) History() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	es := make([]domain.HistoryEntry, len(s.history))
	copy(es, s.history)
	return es
}

// CommitSearch sets the active query and filters, records non-blank
// queries to the history and raises the cosmetic searching flag for
// the configured delay. A newer commit supersedes the pending clear.
// The returned values encode the search as navigable location
// parameters with default values omitted.
func (s *SearchService) CommitSearch(
	query string, f domain.SearchFilters,
) url.Values {
	s.mu.Lock()
	s.query = query
	s.filters = f
	s.searching = true
	s.searchSeq++
	seq := s.searchSeq
	s.mu.Unlock()

	s.RecordHistory(query)
	go s.settleSearching(seq)

	return encodeLocation(query, f)
}

func (s *SearchService) settleSearching(seq uint64) {
	<-s.clock.After(s.searchingDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchSeq == seq {
		s.searching = false
	}
}

func encodeLocation(query string, f domain.SearchFilters) url.Values {
	v := url.Values{}
	if strings.TrimSpace(query) != "" {
		v.Set("q", query)
	}
	if f.PriceRange.Min.IsPositive() {
		v.Set("minPrice", f.PriceRange.Min.String())
	}
	if f.PriceRange.Max.LessThan(decimal.NewFromInt(domain.DefaultPriceMax)) {
		v.Set("maxPrice", f.PriceRange.Max.String())
	}
	if f.Rating > 0 {
		v.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.SortBy != domain.SortRelevance && f.SortBy != "" {
		v.Set("sort", string(f.SortBy))
	}
	return v
}

// DecodeLocation parses location parameters produced by
// CommitSearch back into a query and filters. Absent or malformed
// values fall back to the defaults.
func DecodeLocation(v url.Values) (string, domain.SearchFilters) {
	f := domain.DefaultFilters()

	if raw := v.Get("minPrice"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			f.PriceRange.Min = d
		}
	}
	if raw := v.Get("maxPrice"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			f.PriceRange.Max = d
		}
	}
	if raw := v.Get("rating"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n <= 5 {
			f.Rating = n
		}
	}
	if so := domain.SortOrder(v.Get("sort")); so.Valid() {
		f.SortBy = so
	}

	return v.Get("q"), f
}

// RestoreLocation reconstructs the active query and filters from
// location parameters, so a committed search survives reloads.
func (s *SearchService) RestoreLocation(v url.Values) {
	query, f := DecodeLocation(v)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.filters = f
}

// ClearSearch resets the active query and filters to the defaults.
func (s *SearchService) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = ""
	s.filters = domain.DefaultFilters()
}

func (s *SearchService) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *SearchService) Filters() domain.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// IsSearching reports the cosmetic loading flag. It never gates
// result computation.
func (s *SearchService) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching
}

func (s *SearchService) loadHistory() {
	const op = "SearchService.loadHistory"
	log := slog.With("op", op)

	b, err := s.kv.Get(historyKey)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			log.Warn("failed to read search history", "err", err)
		}
		return
	}

	var es []domain.HistoryEntry
	if err := json.Unmarshal(b, &es); err != nil {
		log.Warn("discarding corrupt search history", "err", err)
		return
	}
	s.history = es
}

// persistHistory requires s.mu held.
func (s *SearchService) persistHistory() {
	const op = "SearchService.persistHistory"

	b, err := json.Marshal(s.history)
	if err != nil {
		slog.Warn("failed to encode search history", "op", op, "err", err)
		return
	}
	if err := s.kv.Set(historyKey, b); err != nil {
		slog.Warn("failed to persist search history", "op", op, "err", err)
	}
}
