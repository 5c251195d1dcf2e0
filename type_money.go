package coinfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value. All market quotes and valuations are
// expressed in USD, the quote currency of the price feed.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M creates a USD monetary value from any supported numeric type.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value), cur: money.USD}
}

// currency returns the money's currency, never nil.
func (m Money) currency() money.Currency {
	cur := m.cur
	if cur == "" {
		cur = money.USD
	}
	return *money.New(0, cur).Currency()
}

// String formats the value with its currency symbol and grouping,
// e.g. "$20,000.00".
func (m Money) String() string {
	cur := m.currency()
	cents := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(cents.Round(0).IntPart())
}

func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) }
func (m Money) IsZero() bool          { return m.value.IsZero() }
func (m Money) IsPositive() bool      { return m.value.IsPositive() }
func (m Money) IsNegative() bool      { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool { return m.value.LessThan(n.value) }
func (m Money) Add(n Money) Money     { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) Sub(n Money) Money     { return Money{value: m.value.Sub(n.value), cur: m.cur} }
func (m Money) Mul(q Quantity) Money  { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) AsFloat() float64      { return m.value.InexactFloat64() }

// PercentOf returns 100 * m / total, or 0 when total is zero.
func (m Money) PercentOf(total Money) float64 {
	if total.IsZero() {
		return 0
	}
	return m.value.Div(total.value).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
