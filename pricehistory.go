package coinfolio

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/etnz/coinfolio/timeline"
)

// PriceHistory stores USD price time-series per symbol. Prices can be
// ingested in any order, including backfills of historical points; a
// new point at an already known instant overwrites the old one.
//
// PriceHistory is safe for concurrent use: a background feed can keep
// ingesting while valuations read.
type PriceHistory struct {
	mu     sync.RWMutex
	series map[string]*timeline.Series[float64]
}

// NewPriceHistory creates an empty PriceHistory.
func NewPriceHistory() *PriceHistory {
	return &PriceHistory{series: make(map[string]*timeline.Series[float64])}
}

// Ingest records the USD price of a symbol at an instant.
func (h *PriceHistory) Ingest(symbol string, at timeline.Time, price float64) {
	sym := Symbol(symbol)
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.series[sym]
	if !ok {
		s = &timeline.Series[float64]{}
		h.series[sym] = s
	}
	s.Set(at, price)
}

// PriceAt returns the latest known price of a symbol at or before the
// given instant. It reports false for an unknown symbol or an instant
// before its first recorded price.
func (h *PriceHistory) PriceAt(symbol string, at timeline.Time) (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.series[Symbol(symbol)]
	if !ok {
		return 0, false
	}
	return s.AsOf(at)
}

// Latest returns the most recent recorded price of a symbol and its
// instant.
func (h *PriceHistory) Latest(symbol string) (timeline.Time, float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.series[Symbol(symbol)]
	if !ok {
		return 0, 0, false
	}
	return s.Latest()
}

// DayChange compares the latest known price of a symbol against its
// price 24 hours before that point. It reports false when the symbol is
// unknown, no price that old exists, or the older price is zero and the
// percent change is undefined.
func (h *PriceHistory) DayChange(symbol string) (Change, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.series[Symbol(symbol)]
	if !ok {
		return Change{}, false
	}
	at, _, ok := s.Latest()
	if !ok {
		return Change{}, false
	}
	return dayChange(s, at)
}

// DayChangeAt is DayChange anchored at a given instant instead of the
// latest recorded price.
func (h *PriceHistory) DayChangeAt(symbol string, at timeline.Time) (Change, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.series[Symbol(symbol)]
	if !ok {
		return Change{}, false
	}
	return dayChange(s, at)
}

func dayChange(s *timeline.Series[float64], at timeline.Time) (Change, bool) {
	latest, ok := s.AsOf(at)
	if !ok {
		return Change{}, false
	}
	old, ok := s.AsOf(at.Add(-timeline.Day))
	if !ok || old == 0 {
		return Change{}, false
	}
	return Change{Old: M(old), New: M(latest)}, true
}

// Symbols returns every symbol with at least one recorded price, sorted.
func (h *PriceHistory) Symbols() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := slices.Collect(maps.Keys(h.series))
	slices.Sort(keys)
	return keys
}

// Points yields every recorded price point of a symbol in chronological
// order. The series is copied under the read lock before iteration.
func (h *PriceHistory) Points(symbol string) iter.Seq2[timeline.Time, float64] {
	h.mu.RLock()
	s, ok := h.series[Symbol(symbol)]
	var times []timeline.Time
	var prices []float64
	if ok {
		for at, p := range s.All() {
			times = append(times, at)
			prices = append(prices, p)
		}
	}
	h.mu.RUnlock()
	return func(yield func(timeline.Time, float64) bool) {
		for i := range times {
			if !yield(times[i], prices[i]) {
				return
			}
		}
	}
}
