package coinfolio

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/etnz/coinfolio/timeline"
)

// Change is the evolution of a USD amount between two measurements.
type Change struct {
	Old Money
	New Money
}

// Diff returns the absolute evolution, New minus Old.
func (c Change) Diff() Money { return c.New.Sub(c.Old) }

// Percent returns the relative evolution in percent. Growing from
// nothing is infinite: +Inf for a gain, -Inf for a loss, NaN when both
// measurements are zero.
func (c Change) Percent() float64 {
	if c.Old.IsZero() {
		switch {
		case c.New.IsPositive():
			return math.Inf(+1)
		case c.New.IsNegative():
			return math.Inf(-1)
		default:
			return math.NaN()
		}
	}
	return c.Diff().AsFloat() / c.Old.AsFloat() * 100
}

// String renders the relative evolution, e.g. "+5.26%".
func (c Change) String() string {
	p := c.Percent()
	switch {
	case math.IsNaN(p):
		return "No change"
	case math.IsInf(p, +1):
		return "+Inf%"
	case math.IsInf(p, -1):
		return "-Inf%"
	}
	return fmt.Sprintf("%+.2f%%", p)
}

// Valuation combines a transaction ledger with market prices to answer
// "what was this portfolio worth" questions.
type Valuation struct {
	Ledger *Ledger
	Market *PriceHistory
}

// NewValuation creates a valuation engine over a ledger and a market.
func NewValuation(ledger *Ledger, market *PriceHistory) *Valuation {
	return &Valuation{Ledger: ledger, Market: market}
}

// ValueAt returns the total USD value of the portfolio at the given
// instant: each held amount times the latest price known at that point.
// Symbols with no price yet contribute nothing; Breakdown flags them.
func (v *Valuation) ValueAt(at timeline.Time) Money {
	var total Money
	snapshot := v.Ledger.HoldingsAt(at)
	for sym, amount := range snapshot.All() {
		price, ok := v.Market.PriceAt(sym, at)
		if !ok {
			continue
		}
		total = total.Add(M(price).Mul(amount))
	}
	return total
}

// Value returns the total USD value of the portfolio right now.
func (v *Valuation) Value() Money { return v.ValueAt(timeline.Now()) }

// ChangeBetween measures the evolution of the portfolio value from one
// instant to another. Both measurements use the holdings and prices of
// their own instant, so the change reflects trades as well as market
// moves.
func (v *Valuation) ChangeBetween(from, to timeline.Time) Change {
	return Change{Old: v.ValueAt(from), New: v.ValueAt(to)}
}

// ChangeSince measures the evolution of the portfolio value from the
// given instant to now.
func (v *Valuation) ChangeSince(since timeline.Time) Change {
	return v.ChangeBetween(since, timeline.Now())
}

// ChangeOver measures the evolution of the portfolio value over a
// window ending at the given instant.
func (v *Valuation) ChangeOver(window time.Duration, at timeline.Time) Change {
	return v.ChangeBetween(at.Add(-window), at)
}

// BreakdownRow details one held symbol's contribution to the portfolio
// value at an instant.
type BreakdownRow struct {
	Symbol  string
	Amount  Quantity
	Price   Money   // latest known price at the instant, zero if Unpriced
	Value   Money   // Amount times Price
	Portion float64 // share of the priced total, in percent
	// Unpriced marks a symbol with no price known at the instant; it
	// contributes nothing to the total but is still listed.
	Unpriced bool
}

// BreakdownAt returns the per-symbol composition of the portfolio value
// at the given instant, in sorted symbol order.
func (v *Valuation) BreakdownAt(at timeline.Time) []BreakdownRow {
	snapshot := v.Ledger.HoldingsAt(at)
	rows := make([]BreakdownRow, 0, snapshot.Len())
	var total Money
	for sym, amount := range snapshot.All() {
		row := BreakdownRow{Symbol: sym, Amount: amount}
		if price, ok := v.Market.PriceAt(sym, at); ok {
			row.Price = M(price)
			row.Value = row.Price.Mul(amount)
			total = total.Add(row.Value)
		} else {
			row.Unpriced = true
		}
		rows = append(rows, row)
	}
	for i := range rows {
		rows[i].Portion = rows[i].Value.PercentOf(total)
	}
	// Biggest positions first, ties and unpriced rows alphabetically.
	slices.SortStableFunc(rows, func(a, b BreakdownRow) int {
		if a.Value.Equal(b.Value) {
			return strings.Compare(a.Symbol, b.Symbol)
		}
		if a.Value.LessThan(b.Value) {
			return 1
		}
		return -1
	})
	return rows
}

// Breakdown returns the per-symbol composition of the portfolio value
// right now.
func (v *Valuation) Breakdown() []BreakdownRow { return v.BreakdownAt(timeline.Now()) }

// HistoryPoint is one sample of the portfolio value over time.
type HistoryPoint struct {
	At    timeline.Time
	Value Money
}

// History samples the portfolio value from one instant to another at a
// fixed step. Both endpoints are included; a non-positive step defaults
// to one day.
func (v *Valuation) History(from, to timeline.Time, step time.Duration) []HistoryPoint {
	if step <= 0 {
		step = timeline.Day
	}
	var points []HistoryPoint
	for at := from; at.Before(to); at = at.Add(step) {
		points = append(points, HistoryPoint{At: at, Value: v.ValueAt(at)})
	}
	return append(points, HistoryPoint{At: to, Value: v.ValueAt(to)})
}
