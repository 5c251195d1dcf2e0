package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio"
)

type importPricesCmd struct{}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "ingest price points from a JSONL file" }
func (*importPricesCmd) Usage() string {
	return `cfl import-prices <file>...

  Reads JSONL files of price points and records every sample, at its
  own instant. Lines look like:

    {"symbol":"BTC","timestamp":1700000000,"price":19024.7}
`
}

func (p *importPricesCmd) SetFlags(f *flag.FlagSet) {}

func (p *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}

	for _, path := range f.Args() {
		file, err := os.Open(path)
		if err != nil {
			return fail(err)
		}
		history := coinfolio.NewPriceHistory()
		if err := coinfolio.DecodePrices(file, history); err != nil {
			file.Close()
			return fail(fmt.Errorf("could not decode %q: %w", path, err))
		}
		file.Close()

		n := 0
		for _, symbol := range history.Symbols() {
			for at, price := range history.Points(symbol) {
				if err := repo.Ingest(symbol, at, price); err != nil {
					return fail(err)
				}
				n++
			}
		}
		fmt.Printf("Recorded %d prices from %s\n", n, path)
	}
	return subcommands.ExitSuccess
}
