package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
	"github.com/etnz/coinfolio/timeline"
)

type holdingsCmd struct {
	user string
	date string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the amounts held at a date" }
func (*holdingsCmd) Usage() string {
	return `cfl holdings [-u <user>] [-d <date>]

  Shows what the portfolio holds at a date (defaults to now), as
  replayed from the ledger.

Usage Examples:
$ cfl holdings
$ cfl holdings -d "2024/01/15"
`
}

func (p *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the snapshot (defaults to now).")
}

func (p *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	at, err := parseInstant(p.date)
	if err != nil {
		return fail(err)
	}
	if at.IsZero() {
		at = timeline.Now()
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	snapshot, err := repo.HoldingsAt(user, at)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.HoldingsMarkdown(user, snapshot))
	return subcommands.ExitSuccess
}
