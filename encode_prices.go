package coinfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/coinfolio/timeline"
)

// PricePoint is one observed USD price of a symbol, as persisted in
// JSONL price files.
type PricePoint struct {
	Symbol string        `json:"symbol"`
	At     timeline.Time `json:"timestamp"`
	Price  float64       `json:"price"`
}

// MarshalJSON implements the json.Marshaler interface for PricePoint.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", p.Symbol)
	w.Append("timestamp", p.At)
	w.Append("price", p.Price)
	return w.MarshalJSON()
}

// EncodePricePoint writes one price point to the writer followed by a
// newline, in JSONL format.
func EncodePricePoint(w io.Writer, p PricePoint) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal price point: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write price point: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

// EncodePrices persists every recorded price point of a symbol to an
// io.Writer in JSONL format, in chronological order.
func EncodePrices(w io.Writer, history *PriceHistory, symbol string) error {
	sym := Symbol(symbol)
	for at, price := range history.Points(sym) {
		if err := EncodePricePoint(w, PricePoint{Symbol: sym, At: at, Price: price}); err != nil {
			return err
		}
	}
	return nil
}

// DecodePrices reads JSONL price points from a stream and ingests them
// into the given history.
func DecodePrices(r io.Reader, history *PriceHistory) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var p PricePoint
		if err := json.Unmarshal(line, &p); err != nil {
			return fmt.Errorf("could not decode price point %q: %w", string(line), err)
		}
		if p.Symbol == "" {
			return fmt.Errorf("price point %q has no symbol", string(line))
		}
		history.Ingest(p.Symbol, p.At, p.Price)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from input: %w", err)
	}
	return nil
}
