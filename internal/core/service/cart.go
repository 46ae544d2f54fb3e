package service

import (
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CartAggregator = (*CartService)(nil)

// CartService aggregates products into quantity lines keyed by
// product id, keeping insertion order for snapshots.
type CartService struct {
	mu    sync.Mutex
	lines map[string]*domain.CartLine
	order []string
}

func NewCartService() *CartService {
	return &CartService{lines: make(map[string]*domain.CartLine)}
}

// Add inserts a new line with qty 1 or increments the existing one.
// The snapshot taken on first add keeps its non-quantity fields on
// repeat adds. Always succeeds.
func (s *CartService) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.lines[p.ID]; ok {
		l.Qty++
		return
	}
	s.lines[p.ID] = &domain.CartLine{Product: p, Qty: 1}
	s.order = append(s.order, p.ID)
}

// SetQty overwrites the line quantity, clamped to a minimum of 1.
// Unknown ids are ignored.
func (s *CartService) SetQty(id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[id]
	if !ok {
		return
	}
	if qty < 1 {
		qty = 1
	}
	l.Qty = qty
}

// Remove deletes the line if present, no-op otherwise.
func (s *CartService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[id]; !ok {
		return
	}
	delete(s.lines, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties all lines.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]*domain.CartLine)
	s.order = nil
}

// Lines returns a snapshot in insertion order, valid until the next
// mutating call.
func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs := make([]domain.CartLine, 0, len(s.order))
	for _, id := range s.order {
		vs = append(vs, *s.lines[id])
	}
	return vs
}

// Total sums price by quantity over all lines, computed fresh and
// never accumulated in rounded form.
func (s *CartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// ItemCount sums quantities over all lines.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, l := range s.lines {
		n += l.Qty
	}
	return n
}
