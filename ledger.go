package coinfolio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/coinfolio/timeline"
)

// Ledger is the append-only source of truth for a single portfolio: an
// ordered list of transactions sorted by (instant, type-rank).
// Transactions recorded at the same key keep their insertion order.
//
// A Ledger is not safe for concurrent use; Repository serializes access.
type Ledger struct {
	transactions []Transaction

	// projection is the holdings timeline rebuilt from the transactions.
	// It is invalidated by every mutation and rebuilt lazily.
	projection *timeline.Series[Snapshot]
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Len returns the number of transactions recorded.
func (l *Ledger) Len() int { return len(l.transactions) }

// All yields every transaction in chronological order.
func (l *Ledger) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Transactions returns a copy of the ordered transaction list.
func (l *Ledger) Transactions() []Transaction {
	return slices.Clone(l.transactions)
}

// Clear removes every transaction from the ledger.
func (l *Ledger) Clear() {
	l.transactions = nil
	l.projection = nil
}

// Append validates tx and inserts it at its chronological position,
// which may be anywhere in the past. The full holdings timeline is then
// rebuilt; if the resulting history is inconsistent (an overdraw at any
// point), the insertion is rolled back and the error returned, leaving
// the ledger exactly as it was.
func (l *Ledger) Append(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid %s transaction: %w", tx.What(), err)
	}
	i := l.insert(tx)

	projection, err := replay(l.transactions)
	if err != nil {
		l.transactions = slices.Delete(l.transactions, i, i+1)
		return err
	}
	l.projection = projection
	return nil
}

// insert places tx at its chronological position and returns the index.
// Among equal (instant, type-rank) keys the new transaction goes last,
// preserving recording order.
func (l *Ledger) insert(tx Transaction) int {
	i, _ := slices.BinarySearchFunc(l.transactions, tx, func(a, b Transaction) int {
		if c := compareTx(a, b); c != 0 {
			return c
		}
		return -1
	})
	l.transactions = slices.Insert(l.transactions, i, tx)
	l.projection = nil
	return i
}

// clone returns a ledger sharing no mutable state with the receiver.
// Transactions are immutable values and a built projection is never
// mutated afterwards, so both can be shared as-is.
func (l *Ledger) clone() *Ledger {
	return &Ledger{
		transactions: slices.Clone(l.transactions),
		projection:   l.projection,
	}
}

// delete removes the first transaction equal to tx, reporting whether
// one was found.
func (l *Ledger) delete(tx Transaction) bool {
	for i, other := range l.transactions {
		if other.Equal(tx) {
			l.transactions = slices.Delete(l.transactions, i, i+1)
			l.projection = nil
			return true
		}
	}
	return false
}

// Init records a baseline reset of the portfolio.
func (l *Ledger) Init(at timeline.Time, holdings map[string]Quantity) (Init, error) {
	tx := NewInit(at, holdings)
	return tx, l.Append(tx)
}

// Buy records an acquisition of an amount of a symbol.
func (l *Ledger) Buy(at timeline.Time, symbol string, amount Quantity) (Buy, error) {
	tx := NewBuy(at, symbol, amount)
	return tx, l.Append(tx)
}

// Sell records a disposal of an amount of a symbol.
func (l *Ledger) Sell(at timeline.Time, symbol string, amount Quantity) (Sell, error) {
	tx := NewSell(at, symbol, amount)
	return tx, l.Append(tx)
}

// Trade records an exchange of one symbol for another.
func (l *Ledger) Trade(at timeline.Time, inSymbol string, inAmount Quantity, outSymbol string, outAmount Quantity) (Trade, error) {
	tx := NewTrade(at, inSymbol, inAmount, outSymbol, outAmount)
	return tx, l.Append(tx)
}

// snapshots returns the holdings timeline, rebuilding it if needed.
// The ledger being always kept consistent by Append, a rebuild here
// cannot fail.
func (l *Ledger) snapshots() *timeline.Series[Snapshot] {
	if l.projection == nil {
		projection, err := replay(l.transactions)
		if err != nil {
			// Unreachable for a ledger mutated only through Append.
			panic(fmt.Sprintf("inconsistent ledger: %v", err))
		}
		l.projection = projection
	}
	return l.projection
}

// HoldingsAt returns the portfolio composition as of the given instant,
// i.e. the latest snapshot at or before it. Before the first transaction
// the portfolio is empty. The returned snapshot carries the requested
// instant when it falls after the last recorded change.
func (l *Ledger) HoldingsAt(at timeline.Time) Snapshot {
	recorded, found := l.snapshots().AsOf(at)
	if !found {
		return Snapshot{at: at}
	}
	if at.After(recorded.at) {
		return recorded.withTime(at)
	}
	return recorded
}

// CurrentHoldings returns the portfolio composition right now.
func (l *Ledger) CurrentHoldings() Snapshot { return l.HoldingsAt(timeline.Now()) }

// History yields every snapshot in the holdings timeline, one per
// distinct transaction instant.
func (l *Ledger) History() iter.Seq2[timeline.Time, Snapshot] {
	return l.snapshots().All()
}
