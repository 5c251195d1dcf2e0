package coinfolio

import (
	"fmt"

	"github.com/etnz/coinfolio/timeline"
)

// OwnershipError reports a transaction that removes more of a symbol than
// the ledger holds at that instant, per replay. It is fatal to the
// requested mutation: the offending transaction is not kept.
type OwnershipError struct {
	Symbol string
	At     timeline.Time
	Have   Quantity
	Want   Quantity
}

func (e *OwnershipError) Error() string {
	if e.Have.IsZero() {
		return fmt.Sprintf("on %s, cannot remove %s %s: not held", e.At, e.Want, e.Symbol)
	}
	return fmt.Sprintf("on %s, cannot remove %s %s: only %s held", e.At, e.Want, e.Symbol, e.Have)
}
