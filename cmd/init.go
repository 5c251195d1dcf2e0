package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio"
)

type initCmd struct {
	user string
	date string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "reset a portfolio to an exact baseline" }
func (*initCmd) Usage() string {
	return `cfl init [-u <user>] [-d <date>] [<symbol> <amount>]...

  Resets the portfolio to exactly the given holdings at the given date.
  Everything held before that instant is discarded. With no arguments
  the baseline is an empty portfolio.

Usage Examples:
$ cfl init BTC 1 ETH 10
$ cfl init -u alice -d "2024/01/01" BTC 0.5
`
}

func (p *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the baseline (defaults to now).")
}

func (p *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg()%2 != 0 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}
	at, err := parseInstant(p.date)
	if err != nil {
		return fail(err)
	}
	holdings := make(map[string]coinfolio.Quantity, f.NArg()/2)
	for i := 0; i < f.NArg(); i += 2 {
		amount, err := parseAmount(f.Arg(i + 1))
		if err != nil {
			return fail(err)
		}
		holdings[f.Arg(i)] = amount
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	tx, err := repo.Init(user, at, holdings)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Initialized portfolio of %s with %d symbols\n", user, len(tx.Holdings))
	reportValue(repo, user)
	return subcommands.ExitSuccess
}
