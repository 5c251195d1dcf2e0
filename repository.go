package coinfolio

import (
	"fmt"
	"sync"

	"github.com/etnz/coinfolio/timeline"
)

// Repository is the concurrency boundary of the package: it serves
// per-user ledgers and the shared price history on top of a Store,
// loading each user's ledger lazily and serializing its mutations.
type Repository struct {
	store  Store
	market *PriceHistory

	mu    sync.Mutex
	books map[string]*book
}

// book is one user's loaded ledger with its own lock, so users never
// contend with each other.
type book struct {
	mu     sync.Mutex
	ledger *Ledger
}

// NewRepository creates a Repository over the given store and loads the
// recorded price history into memory.
func NewRepository(store Store) (*Repository, error) {
	market := NewPriceHistory()
	if err := store.LoadPrices(market); err != nil {
		return nil, fmt.Errorf("could not load price history: %w", err)
	}
	return &Repository{
		store:  store,
		market: market,
		books:  make(map[string]*book),
	}, nil
}

// Market returns the shared price history.
func (r *Repository) Market() *PriceHistory { return r.market }

// book returns the user's loaded book, loading the ledger from the
// store on first access.
func (r *Repository) book(user string) (*book, error) {
	r.mu.Lock()
	b, ok := r.books[user]
	if !ok {
		b = &book{}
		r.books[user] = b
	}
	r.mu.Unlock()

	b.mu.Lock()
	if b.ledger == nil {
		ledger, err := r.store.LoadLedger(user)
		if err != nil {
			b.mu.Unlock()
			return nil, err
		}
		b.ledger = ledger
	}
	return b, nil
}

// record appends tx to the user's ledger and, once the replayed history
// accepts it, persists it. A transaction rejected by replay leaves both
// the ledger and the store untouched.
func (r *Repository) record(user string, tx Transaction) error {
	b, err := r.book(user)
	if err != nil {
		return err
	}
	defer b.mu.Unlock()

	if err := b.ledger.Append(tx); err != nil {
		return err
	}
	if err := r.store.AppendTransaction(user, tx); err != nil {
		b.ledger.delete(tx)
		return fmt.Errorf("could not persist %s transaction: %w", tx.What(), err)
	}
	return nil
}

// Init records a baseline reset for the user.
func (r *Repository) Init(user string, at timeline.Time, holdings map[string]Quantity) (Init, error) {
	tx := NewInit(at, holdings)
	return tx, r.record(user, tx)
}

// Buy records an acquisition for the user.
func (r *Repository) Buy(user string, at timeline.Time, symbol string, amount Quantity) (Buy, error) {
	tx := NewBuy(at, symbol, amount)
	return tx, r.record(user, tx)
}

// Sell records a disposal for the user.
func (r *Repository) Sell(user string, at timeline.Time, symbol string, amount Quantity) (Sell, error) {
	tx := NewSell(at, symbol, amount)
	return tx, r.record(user, tx)
}

// Trade records an exchange for the user.
func (r *Repository) Trade(user string, at timeline.Time, inSymbol string, inAmount Quantity, outSymbol string, outAmount Quantity) (Trade, error) {
	tx := NewTrade(at, inSymbol, inAmount, outSymbol, outAmount)
	return tx, r.record(user, tx)
}

// Clear erases the user's entire transaction history, in memory and in
// the store.
func (r *Repository) Clear(user string) error {
	b, err := r.book(user)
	if err != nil {
		return err
	}
	defer b.mu.Unlock()

	if err := r.store.DeleteTransactions(user); err != nil {
		return fmt.Errorf("could not delete transactions for %q: %w", user, err)
	}
	b.ledger.Clear()
	return nil
}

// Transactions returns the user's ordered transaction list.
func (r *Repository) Transactions(user string) ([]Transaction, error) {
	b, err := r.book(user)
	if err != nil {
		return nil, err
	}
	defer b.mu.Unlock()
	return b.ledger.Transactions(), nil
}

// HoldingsAt returns the user's portfolio composition at an instant.
func (r *Repository) HoldingsAt(user string, at timeline.Time) (Snapshot, error) {
	b, err := r.book(user)
	if err != nil {
		return Snapshot{}, err
	}
	defer b.mu.Unlock()
	return b.ledger.HoldingsAt(at), nil
}

// Valuation returns a valuation engine over the user's ledger and the
// shared market.
//
// The engine owns a copy of the ledger taken under the user's lock, so
// it values the state frozen at this call and never races a concurrent
// mutation; take a fresh engine rather than caching one across
// mutations.
func (r *Repository) Valuation(user string) (*Valuation, error) {
	b, err := r.book(user)
	if err != nil {
		return nil, err
	}
	defer b.mu.Unlock()
	return NewValuation(b.ledger.clone(), r.market), nil
}

// Ingest records an observed price in memory and in the store.
func (r *Repository) Ingest(symbol string, at timeline.Time, price float64) error {
	sym := Symbol(symbol)
	r.market.Ingest(sym, at, price)
	if err := r.store.AppendPricePoint(PricePoint{Symbol: sym, At: at, Price: price}); err != nil {
		return fmt.Errorf("could not persist price of %s: %w", sym, err)
	}
	return nil
}

// Users returns every user with a recorded ledger.
func (r *Repository) Users() ([]string, error) { return r.store.Users() }
