package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
)

type listCmd struct {
	user string
	tail int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all transactions in the ledger" }
func (*listCmd) Usage() string {
	return `cfl list [-u <user>] [-tail <n>]

  Lists the user's transactions in chronological order.
`
}

func (p *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	txs, err := repo.Transactions(user)
	if err != nil {
		return fail(err)
	}
	if p.tail > 0 && len(txs) > p.tail {
		txs = txs[len(txs)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(user, txs))
	return subcommands.ExitSuccess
}
