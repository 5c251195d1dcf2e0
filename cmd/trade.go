package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
)

type tradeCmd struct {
	user string
	date string
}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "record an exchange of one symbol for another" }
func (*tradeCmd) Usage() string {
	return `cfl trade [-u <user>] [-d <date>] <out_symbol> <out_amount> <in_symbol> <in_amount>

  Records an atomic exchange: the out leg is removed from the portfolio
  and the in leg added, at the same instant.

Usage Examples:
# give 0.05 BTC, receive 1 ETH
$ cfl trade BTC 0.05 ETH 1
`
}

func (p *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the transaction (defaults to now).")
}

func (p *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}
	at, err := parseInstant(p.date)
	if err != nil {
		return fail(err)
	}
	outAmount, err := parseAmount(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	inAmount, err := parseAmount(f.Arg(3))
	if err != nil {
		return fail(err)
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	tx, err := repo.Trade(user, at, f.Arg(2), inAmount, f.Arg(0), outAmount)
	if err != nil {
		return fail(err)
	}

	fmt.Println(renderer.Transaction(tx))
	reportValue(repo, user)
	return subcommands.ExitSuccess
}
