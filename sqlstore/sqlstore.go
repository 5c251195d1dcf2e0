// Package sqlstore persists ledgers and prices in a single SQLite file,
// an alternative to the plain-file store for deployments that prefer one
// database over a directory of JSONL files.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/timeline"
)

// Store implements coinfolio.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not configure database: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func applyMigrations(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS transactions (
  id      INTEGER PRIMARY KEY AUTOINCREMENT,
  user    TEXT NOT NULL,
  at      INTEGER NOT NULL,            -- unix seconds, duplicated from payload for indexing
  payload TEXT NOT NULL                -- canonical JSON line, same schema as the JSONL store
);
CREATE INDEX IF NOT EXISTS transactions_user ON transactions(user, at);

CREATE TABLE IF NOT EXISTS prices (
  symbol TEXT NOT NULL,
  at     INTEGER NOT NULL,             -- unix seconds
  price  REAL NOT NULL,
  PRIMARY KEY (symbol, at)
);
`
	_, err := db.Exec(schema)
	return err
}

// LoadLedger loads the named user's ledger, an empty one if the user
// has no recorded transaction yet.
func (s *Store) LoadLedger(user string) (*coinfolio.Ledger, error) {
	rows, err := s.db.Query(`SELECT payload FROM transactions WHERE user = ? ORDER BY id`, user)
	if err != nil {
		return nil, fmt.Errorf("could not query transactions for %q: %w", user, err)
	}
	defer rows.Close()

	ledger := coinfolio.NewLedger()
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		tx, err := coinfolio.DecodeTransaction([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("could not decode transaction for %q: %w", user, err)
		}
		if err := ledger.Append(tx); err != nil {
			return nil, fmt.Errorf("inconsistent ledger for %q: %w", user, err)
		}
	}
	return ledger, rows.Err()
}

// AppendTransaction durably records one accepted transaction.
func (s *Store) AppendTransaction(user string, tx coinfolio.Transaction) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not marshal %s transaction: %w", tx.What(), err)
	}
	_, err = s.db.Exec(`INSERT INTO transactions (user, at, payload) VALUES (?, ?, ?)`,
		user, tx.When().Unix(), string(payload))
	if err != nil {
		return fmt.Errorf("could not insert transaction for %q: %w", user, err)
	}
	return nil
}

// DeleteTransactions erases the named user's entire ledger.
func (s *Store) DeleteTransactions(user string) error {
	_, err := s.db.Exec(`DELETE FROM transactions WHERE user = ?`, user)
	return err
}

// Users returns every user with a recorded ledger, sorted.
func (s *Store) Users() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT user FROM transactions ORDER BY user`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var user string
		if err := rows.Scan(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// AppendPricePoint durably records one observed price. Re-recording the
// same (symbol, instant) overwrites the old sample.
func (s *Store) AppendPricePoint(p coinfolio.PricePoint) error {
	_, err := s.db.Exec(
		`INSERT INTO prices (symbol, at, price) VALUES (?, ?, ?)
		 ON CONFLICT(symbol, at) DO UPDATE SET price=excluded.price`,
		coinfolio.Symbol(p.Symbol), p.At.Unix(), p.Price)
	return err
}

// LoadPrices ingests every recorded price point into history.
func (s *Store) LoadPrices(history *coinfolio.PriceHistory) error {
	rows, err := s.db.Query(`SELECT symbol, at, price FROM prices ORDER BY symbol, at`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var symbol string
		var at int64
		var price float64
		if err := rows.Scan(&symbol, &at, &price); err != nil {
			return err
		}
		history.Ingest(symbol, timeline.Unix(at), price)
	}
	return rows.Err()
}
