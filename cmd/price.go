package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/timeline"
)

type priceCmd struct {
	date string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "show or record the USD price of a symbol" }
func (*priceCmd) Usage() string {
	return `cfl price <symbol> [<price>] [-d <date>]

  With one argument, shows the latest known price of the symbol and its
  24h move. With two, records a price by hand, dated -d (defaults to
  now).

Usage Examples:
$ cfl price BTC
$ cfl price BTC 19024.7 -d "2024/01/15"
`
}

func (p *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the recorded price (defaults to now).")
}

func (p *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	symbol := coinfolio.Symbol(f.Arg(0))

	if f.NArg() == 2 {
		price, err := strconv.ParseFloat(f.Arg(1), 64)
		if err != nil {
			return fail(fmt.Errorf("invalid price %q: %w", f.Arg(1), err))
		}
		at, err := parseInstant(p.date)
		if err != nil {
			return fail(err)
		}
		if at.IsZero() {
			at = timeline.Now()
		}
		if err := repo.Ingest(symbol, at, price); err != nil {
			return fail(err)
		}
		fmt.Printf("Recorded %s at %s on %s\n", symbol, coinfolio.M(price), at)
		return subcommands.ExitSuccess
	}

	at, price, ok := repo.Market().Latest(symbol)
	if !ok {
		fmt.Printf("No price data for %s\n", symbol)
		return subcommands.ExitSuccess
	}
	fmt.Printf("%s: %s (as of %s)\n", symbol, coinfolio.M(price), at)
	if change, ok := repo.Market().DayChange(symbol); ok {
		fmt.Printf("24h: %s\n", change)
	}
	return subcommands.ExitSuccess
}
