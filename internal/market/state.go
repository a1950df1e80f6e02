package market

import (
	"log"
	"sync"
	"time"

	"SatoshiSim/internal/history"
	"SatoshiSim/internal/model"
)

// State owns the mutable price state: the latest accepted quote and the yearly
// price table. All mutation goes through its methods.
type State struct {
	mu    sync.Mutex
	quote model.Quote
	table *history.Table
}

// NewState creates a State seeded with a default quote so valuations work
// before the first successful fetch.
func NewState(table *history.Table, defaultQuote model.Quote) *State {
	if defaultQuote.FetchedAt.IsZero() {
		defaultQuote.FetchedAt = time.Now()
	}
	return &State{quote: defaultQuote, table: table}
}

// ApplyQuote accepts a freshly fetched quote. Invalid quotes (non-positive
// amount) are dropped and the previous value retained. A valid quote also
// updates the table's entry for the current calendar year — the only mutation
// the table sees after construction. Later writes win; quotes are independent
// samples of the same quantity, so ordering is not tracked.
func (s *State) ApplyQuote(q model.Quote) bool {
	if !q.Valid() {
		log.Printf("[WARN] rejecting invalid quote (usd=%.2f), keeping previous %.2f", q.USD, s.Quote().USD)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = q
	s.table.SetCurrentYear(time.Now().Year(), q.USD)
	return true
}

// Quote returns the latest accepted quote.
func (s *State) Quote() model.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote
}

// PriceForYear returns the recorded price for a year, falling back to the
// live price for years outside the table. Unknown or future years are
// deliberately treated as "now" rather than an error.
func (s *State) PriceForYear(year int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.table.Price(year); ok {
		return p
	}
	return s.quote.USD
}

// TotalValue marks a BTC holding to the live price.
func (s *State) TotalValue(holdingsBTC float64) float64 {
	return holdingsBTC * s.Quote().USD
}

// Points exposes the table rows for display and selection.
func (s *State) Points() []model.PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Points()
}

// EarliestYear returns the first tabled year, or fallback on an empty table.
func (s *State) EarliestYear(fallback int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.EarliestYear(fallback)
}
