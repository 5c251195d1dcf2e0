package coinfolio

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/coinfolio/timeline"
)

// Snapshot is the portfolio composition at one instant: which symbols
// are held and in what amount. Snapshots are immutable values; reading
// one never requires copying.
type Snapshot struct {
	at      timeline.Time
	amounts map[string]Quantity
}

// At returns the instant this snapshot describes. For a snapshot
// answering a query after the last recorded change, this is the
// requested instant, not the last transaction's.
func (s Snapshot) At() timeline.Time { return s.at }

// Amount returns the held amount of the given symbol, zero if unheld.
func (s Snapshot) Amount(symbol string) Quantity { return s.amounts[Symbol(symbol)] }

// Has reports whether the given symbol is held.
func (s Snapshot) Has(symbol string) bool {
	_, ok := s.amounts[Symbol(symbol)]
	return ok
}

// Len returns the number of distinct symbols held.
func (s Snapshot) Len() int { return len(s.amounts) }

// Symbols returns the held symbols in sorted order.
func (s Snapshot) Symbols() []string {
	keys := slices.Collect(maps.Keys(s.amounts))
	slices.Sort(keys)
	return keys
}

// All yields symbol and amount pairs in sorted symbol order.
func (s Snapshot) All() iter.Seq2[string, Quantity] {
	return func(yield func(string, Quantity) bool) {
		for _, sym := range s.Symbols() {
			if !yield(sym, s.amounts[sym]) {
				return
			}
		}
	}
}

func (s Snapshot) String() string {
	var b []byte
	b = append(b, '{')
	for sym, q := range s.All() {
		if len(b) > 1 {
			b = append(b, ' ')
		}
		b = fmt.Appendf(b, "%s:%s", sym, q)
	}
	b = append(b, '}')
	return string(b)
}

// withTime returns the same composition stamped with another instant.
// The holdings map is shared, snapshots being read-only.
func (s Snapshot) withTime(at timeline.Time) Snapshot {
	return Snapshot{at: at, amounts: s.amounts}
}

// replay rebuilds the full holdings timeline from an ordered transaction
// list. Each distinct instant yields one snapshot, derived from the
// previous one. Replay fails with an OwnershipError on the first
// transaction removing more of a symbol than is held at that point.
func replay(transactions []Transaction) (*timeline.Series[Snapshot], error) {
	series := &timeline.Series[Snapshot]{}
	current := make(map[string]Quantity)
	var at timeline.Time

	for i, tx := range transactions {
		if i == 0 || tx.When() != at {
			// A new instant starts from a copy of the previous
			// holdings, so earlier snapshots stay untouched.
			current = maps.Clone(current)
			at = tx.When()
		}
		if err := apply(current, tx); err != nil {
			return nil, err
		}
		series.Set(at, Snapshot{at: at, amounts: current})
	}
	return series, nil
}

// apply mutates holdings with the effect of one transaction.
func apply(holdings map[string]Quantity, tx Transaction) error {
	switch t := tx.(type) {
	case Init:
		// A baseline reset: everything held before this instant is
		// discarded, only the stated amounts remain.
		clear(holdings)
		for sym, q := range t.Holdings {
			holdings[sym] = q
		}
	case Buy:
		add(holdings, t.InSymbol, t.InAmount)
	case Sell:
		if err := remove(holdings, t.OutSymbol, t.OutAmount, t.When()); err != nil {
			return err
		}
	case Trade:
		// The out leg is checked and removed before the in leg is
		// credited, so a trade never manufactures cover for itself.
		if err := remove(holdings, t.OutSymbol, t.OutAmount, t.When()); err != nil {
			return err
		}
		add(holdings, t.InSymbol, t.InAmount)
	default:
		return fmt.Errorf("unknown transaction type %q", tx.What())
	}
	return nil
}

func add(holdings map[string]Quantity, symbol string, amount Quantity) {
	holdings[symbol] = holdings[symbol].Add(amount)
}

func remove(holdings map[string]Quantity, symbol string, amount Quantity, at timeline.Time) error {
	have, held := holdings[symbol]
	if !held || have.LessThan(amount) {
		return &OwnershipError{Symbol: symbol, At: at, Have: have, Want: amount}
	}
	rest := have.Sub(amount)
	if rest.IsDust() {
		// Residuals below the dust threshold are rounding noise from
		// decimal arithmetic, not real positions.
		delete(holdings, symbol)
		return nil
	}
	holdings[symbol] = rest
	return nil
}
