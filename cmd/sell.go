package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
)

type sellCmd struct {
	user string
	date string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a disposal of a symbol" }
func (*sellCmd) Usage() string {
	return `cfl sell [-u <user>] [-d <date>] <symbol> <amount>

  Records a disposal. Selling more than is held at that point of
  history is rejected and leaves the ledger untouched.

Usage Examples:
$ cfl sell BTC 0.5
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the transaction (defaults to now).")
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx, err := repo.Sell(user, at, f.Arg(0), amount)
	if err != nil {
		return fail(err)
	}

	fmt.Println(renderer.Transaction(tx))
	reportValue(repo, user)
	return subcommands.ExitSuccess
}
