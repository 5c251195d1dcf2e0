package renderer

import (
	"fmt"

	"github.com/etnz/coinfolio"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx coinfolio.Transaction) string {
	switch v := tx.(type) {
	case coinfolio.Init:
		return fmt.Sprintf("Initialized portfolio with %d symbols", len(v.Holdings))
	case coinfolio.Buy:
		return fmt.Sprintf("Bought %s %s", v.InAmount, v.InSymbol)
	case coinfolio.Sell:
		return fmt.Sprintf("Sold %s %s", v.OutAmount, v.OutSymbol)
	case coinfolio.Trade:
		return fmt.Sprintf("Traded %s %s for %s %s", v.OutAmount, v.OutSymbol, v.InAmount, v.InSymbol)
	default:
		return string(tx.What())
	}
}
