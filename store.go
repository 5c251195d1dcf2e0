package coinfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists ledgers and price points. Implementations must accept
// transactions appended in recording order, not chronological order;
// DecodeLedger re-sorts on load.
type Store interface {
	// LoadLedger loads the named user's ledger, an empty one if the
	// user has no recorded transaction yet.
	LoadLedger(user string) (*Ledger, error)
	// AppendTransaction durably records one accepted transaction for
	// the named user.
	AppendTransaction(user string, tx Transaction) error
	// DeleteTransactions erases the named user's entire ledger.
	DeleteTransactions(user string) error
	// Users returns every user with a recorded ledger, sorted.
	Users() ([]string, error)

	// AppendPricePoint durably records one observed price.
	AppendPricePoint(p PricePoint) error
	// LoadPrices ingests every recorded price point into history.
	LoadPrices(history *PriceHistory) error
}

// DirStore is the plain-file Store: one JSONL ledger file per user
// under ledgers/, one JSONL price file per symbol under prices/.
// Files are human-readable and diff-friendly.
type DirStore struct {
	root string
}

// NewDirStore creates a Store rooted at the given directory, creating
// it if needed.
func NewDirStore(root string) (*DirStore, error) {
	for _, dir := range []string{root, filepath.Join(root, "ledgers"), filepath.Join(root, "prices")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create storage directory %q: %w", dir, err)
		}
	}
	return &DirStore{root: root}, nil
}

func (s *DirStore) ledgerPath(user string) string {
	return filepath.Join(s.root, "ledgers", user+".jsonl")
}

func (s *DirStore) pricePath(symbol string) string {
	return filepath.Join(s.root, "prices", Symbol(symbol)+".jsonl")
}

// LoadLedger loads a user's ledger file, an empty ledger if none exists.
func (s *DirStore) LoadLedger(user string) (*Ledger, error) {
	f, err := os.Open(s.ledgerPath(user))
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger for %q: %w", user, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger for %q: %w", user, err)
	}
	return ledger, nil
}

// AppendTransaction appends one transaction line to the user's ledger
// file.
func (s *DirStore) AppendTransaction(user string, tx Transaction) error {
	f, err := os.OpenFile(s.ledgerPath(user), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open ledger for %q: %w", user, err)
	}
	defer f.Close()
	return EncodeTransaction(f, tx)
}

// DeleteTransactions removes the user's ledger file.
func (s *DirStore) DeleteTransactions(user string) error {
	err := os.Remove(s.ledgerPath(user))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Users lists every user with a ledger file, sorted by name.
func (s *DirStore) Users() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "ledgers"))
	if err != nil {
		return nil, fmt.Errorf("could not list ledgers: %w", err)
	}
	var users []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		users = append(users, strings.TrimSuffix(e.Name(), ".jsonl"))
	}
	return users, nil
}

// AppendPricePoint appends one price line to the symbol's price file.
func (s *DirStore) AppendPricePoint(p PricePoint) error {
	f, err := os.OpenFile(s.pricePath(p.Symbol), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open price file for %q: %w", p.Symbol, err)
	}
	defer f.Close()
	return EncodePricePoint(f, p)
}

// LoadPrices ingests every price file under prices/ into history.
func (s *DirStore) LoadPrices(history *PriceHistory) error {
	return filepath.WalkDir(filepath.Join(s.root, "prices"), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".jsonl") {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("could not open price file %q: %w", p, err)
		}
		defer f.Close()
		if err := DecodePrices(f, history); err != nil {
			return fmt.Errorf("could not decode price file %q: %w", p, err)
		}
		return nil
	})
}
