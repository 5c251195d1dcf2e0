package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio"
)

type fetchCmd struct {
	days int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "backfill daily historical prices for symbols" }
func (*fetchCmd) Usage() string {
	return `cfl fetch [-days <n>] <symbol>...

  Retrieves daily closing prices for the given symbols and records
  them, so historical valuations have data to work with.

Usage Examples:
$ cfl fetch -days 365 BTC ETH
`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.days, "days", 30, "How many days of history to retrieve.")
}

func (p *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}

	for _, symbol := range f.Args() {
		points, err := coinfolio.FetchDailyHistory(symbol, p.days)
		if err != nil {
			return fail(err)
		}
		for _, point := range points {
			if err := repo.Ingest(point.Symbol, point.At, point.Price); err != nil {
				return fail(err)
			}
		}
		fmt.Printf("Recorded %d daily prices for %s\n", len(points), coinfolio.Symbol(symbol))
	}
	return subcommands.ExitSuccess
}
