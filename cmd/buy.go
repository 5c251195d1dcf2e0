package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
)

type buyCmd struct {
	user string
	date string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record an acquisition of a symbol" }
func (*buyCmd) Usage() string {
	return `cfl buy [-u <user>] [-d <date>] <symbol> <amount>

  Records an acquisition. The date defaults to now; a past date inserts
  the transaction at its chronological place.

Usage Examples:
$ cfl buy BTC 0.5
$ cfl buy -u alice -d "2024/01/15" ETH 2
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the transaction (defaults to now).")
}

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}
	at, err := parseInstant(p.date)
	if err != nil {
		return fail(err)
	}
	amount, err := parseAmount(f.Arg(1))
	if err != nil {
		return fail(err)
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	tx, err := repo.Buy(user, at, f.Arg(0), amount)
	if err != nil {
		return fail(err)
	}

	fmt.Println(renderer.Transaction(tx))
	reportValue(repo, user)
	return subcommands.ExitSuccess
}
