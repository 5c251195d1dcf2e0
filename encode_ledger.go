package coinfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeTransaction decodes a single JSONL line into the transaction
// struct matching its "command" tag.
func DecodeTransaction(line []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in line %q: %w", string(line), err)
	}

	switch identifier.Command {
	case CmdInit:
		var tx Init
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdBuy:
		var tx Buy
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdSell:
		var tx Sell
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdTrade:
		var tx Trade
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
	}
}

// DecodeLedger decodes transactions from a stream of JSONL data,
// one transaction per line, and returns a sorted Ledger. The decoded
// history is replayed once to verify it is consistent.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		tx, err := DecodeTransaction(line)
		if err != nil {
			return nil, err
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s transaction in ledger: %w", tx.What(), err)
		}
		ledger.insert(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	projection, err := replay(ledger.transactions)
	if err != nil {
		return nil, fmt.Errorf("inconsistent ledger: %w", err)
	}
	ledger.projection = projection
	return ledger, nil
}

// EncodeTransaction marshals a single transaction and writes it to the
// writer followed by a newline, in JSONL format. Field order is fixed
// by each transaction's MarshalJSON, so output is canonical.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

// EncodeLedger persists every transaction to an io.Writer in JSONL
// format, in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for tx := range ledger.All() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
