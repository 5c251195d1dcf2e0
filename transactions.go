package coinfolio

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/coinfolio/timeline"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdInit  CommandType = "init"
	CmdBuy   CommandType = "buy"
	CmdSell  CommandType = "sell"
	CmdTrade CommandType = "trade"
)

// rank is the tie-break among transactions sharing the same instant: an
// init establishes a clean baseline that later same-instant events build
// on, so it always sorts first.
func (c CommandType) rank() int {
	if c == CmdInit {
		return 0
	}
	return 1
}

// Transaction defines the common interface for all ownership-change events
// that can be recorded in a ledger.
type Transaction interface {
	What() CommandType   // What returns the command type of the transaction (e.g., "buy", "sell").
	When() timeline.Time // When returns the instant at which the transaction occurred.
	Equal(Transaction) bool
	Validate() error
}

// compareTx orders transactions by (instant, type-rank). Equal keys are
// resolved by insertion order elsewhere, never here.
func compareTx(a, b Transaction) int {
	switch {
	case a.When().Before(b.When()):
		return -1
	case a.When().After(b.When()):
		return 1
	}
	return a.What().rank() - b.What().rank()
}

type baseCmd struct {
	Command CommandType   `json:"command"`   // Command specifies the type of transaction.
	At      timeline.Time `json:"timestamp"` // At is the instant when the transaction took place.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the instant of the transaction.
func (t baseCmd) When() timeline.Time { return t.At }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("timestamp", t.At)
	return w.MarshalJSON()
}

// Symbol normalizes a user-provided ticker symbol.
func Symbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// --- Init Command ---

// Init resets a portfolio to an exact baseline: the snapshot at its
// instant holds precisely the stated amounts, regardless of prior history.
type Init struct {
	baseCmd
	Holdings map[string]Quantity `json:"holdings"`
}

// NewInit creates a new Init transaction. A zero instant means now.
func NewInit(at timeline.Time, holdings map[string]Quantity) Init {
	normalized := make(map[string]Quantity, len(holdings))
	for sym, q := range holdings {
		normalized[Symbol(sym)] = q
	}
	if at.IsZero() {
		at = timeline.Now()
	}
	return Init{
		baseCmd:  baseCmd{Command: CmdInit, At: at},
		Holdings: normalized,
	}
}

// HoldingsIter yields symbol and amount pairs in a stable, sorted order.
func (t Init) HoldingsIter() iter.Seq2[string, Quantity] {
	keys := slices.Collect(maps.Keys(t.Holdings))
	slices.Sort(keys)
	return func(yield func(string, Quantity) bool) {
		for _, key := range keys {
			if !yield(key, t.Holdings[key]) {
				return
			}
		}
	}
}

// MarshalJSON implements the json.Marshaler interface for Init.
// The holdings object is written with sorted keys for canonical output.
func (t Init) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)

	var holdings jsonObjectWriter
	for sym, q := range t.HoldingsIter() {
		holdings.Append(sym, q)
	}
	holdingsBytes, err := holdings.MarshalJSON()
	if err != nil {
		return nil, err
	}
	w.WriteString(`"holdings":`)
	w.Write(holdingsBytes)
	w.WriteString(",")

	return w.MarshalJSON()
}

func (t Init) Equal(other Transaction) bool {
	o, ok := other.(Init)
	if !ok || t.baseCmd != o.baseCmd || len(t.Holdings) != len(o.Holdings) {
		return false
	}
	for sym, q := range t.Holdings {
		if oq, ok := o.Holdings[sym]; !ok || !q.Equal(oq) {
			return false
		}
	}
	return true
}

// Validate checks the Init transaction's fields. Baseline amounts must be
// strictly positive: an absent symbol already means "none held".
func (t Init) Validate() error {
	for sym, q := range t.Holdings {
		if sym == "" {
			return errors.New("init holding symbol is missing")
		}
		if !q.IsPositive() {
			return fmt.Errorf("init amount for %s must be positive, got %s", sym, q)
		}
	}
	return nil
}

// --- Buy Command ---

// Buy adds an amount of a symbol to the portfolio, typically a purchase
// from fiat currency. For exchanging one cryptocurrency for another,
// see Trade.
type Buy struct {
	baseCmd
	InSymbol string   `json:"in_symbol"`
	InAmount Quantity `json:"in_amount"`
}

// NewBuy creates a new Buy transaction. A zero instant means now.
func NewBuy(at timeline.Time, symbol string, amount Quantity) Buy {
	if at.IsZero() {
		at = timeline.Now()
	}
	return Buy{
		baseCmd:  baseCmd{Command: CmdBuy, At: at},
		InSymbol: Symbol(symbol),
		InAmount: amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("in_symbol", t.InSymbol)
	w.Append("in_amount", t.InAmount)
	return w.MarshalJSON()
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.baseCmd == o.baseCmd && t.InSymbol == o.InSymbol && t.InAmount.Equal(o.InAmount)
}

// Validate checks the Buy transaction's fields.
func (t Buy) Validate() error {
	if t.InSymbol == "" {
		return errors.New("buy symbol is missing")
	}
	if !t.InAmount.IsPositive() {
		return fmt.Errorf("buy amount must be positive, got %s", t.InAmount)
	}
	return nil
}

// --- Sell Command ---

// Sell removes an amount of a symbol from the portfolio.
type Sell struct {
	baseCmd
	OutSymbol string   `json:"out_symbol"`
	OutAmount Quantity `json:"out_amount"`
}

// NewSell creates a new Sell transaction. A zero instant means now.
func NewSell(at timeline.Time, symbol string, amount Quantity) Sell {
	if at.IsZero() {
		at = timeline.Now()
	}
	return Sell{
		baseCmd:   baseCmd{Command: CmdSell, At: at},
		OutSymbol: Symbol(symbol),
		OutAmount: amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("out_symbol", t.OutSymbol)
	w.Append("out_amount", t.OutAmount)
	return w.MarshalJSON()
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.baseCmd == o.baseCmd && t.OutSymbol == o.OutSymbol && t.OutAmount.Equal(o.OutAmount)
}

// Validate checks the Sell transaction's fields. Whether the amount is
// actually held is only known at projection time, since a historical
// insert can retroactively make a sell valid.
func (t Sell) Validate() error {
	if t.OutSymbol == "" {
		return errors.New("sell symbol is missing")
	}
	if !t.OutAmount.IsPositive() {
		return fmt.Errorf("sell amount must be positive, got %s", t.OutAmount)
	}
	return nil
}

// --- Trade Command ---

// Trade exchanges an amount of one cryptocurrency for another: the out
// leg is removed from the portfolio and the in leg added, atomically at
// the same instant.
type Trade struct {
	baseCmd
	InSymbol  string   `json:"in_symbol"`
	InAmount  Quantity `json:"in_amount"`
	OutSymbol string   `json:"out_symbol"`
	OutAmount Quantity `json:"out_amount"`
}

// NewTrade creates a new Trade transaction. A zero instant means now.
func NewTrade(at timeline.Time, inSymbol string, inAmount Quantity, outSymbol string, outAmount Quantity) Trade {
	if at.IsZero() {
		at = timeline.Now()
	}
	return Trade{
		baseCmd:   baseCmd{Command: CmdTrade, At: at},
		InSymbol:  Symbol(inSymbol),
		InAmount:  inAmount,
		OutSymbol: Symbol(outSymbol),
		OutAmount: outAmount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("in_symbol", t.InSymbol)
	w.Append("in_amount", t.InAmount)
	w.Append("out_symbol", t.OutSymbol)
	w.Append("out_amount", t.OutAmount)
	return w.MarshalJSON()
}

func (t Trade) Equal(other Transaction) bool {
	o, ok := other.(Trade)
	return ok && t.baseCmd == o.baseCmd &&
		t.InSymbol == o.InSymbol && t.InAmount.Equal(o.InAmount) &&
		t.OutSymbol == o.OutSymbol && t.OutAmount.Equal(o.OutAmount)
}

// Validate checks the Trade transaction's fields.
func (t Trade) Validate() error {
	if t.InSymbol == "" || t.OutSymbol == "" {
		return errors.New("trade symbols are missing")
	}
	if !t.InAmount.IsPositive() {
		return fmt.Errorf("trade in amount must be positive, got %s", t.InAmount)
	}
	if !t.OutAmount.IsPositive() {
		return fmt.Errorf("trade out amount must be positive, got %s", t.OutAmount)
	}
	if t.InSymbol == t.OutSymbol {
		return fmt.Errorf("cannot trade %s against itself", t.InSymbol)
	}
	return nil
}
