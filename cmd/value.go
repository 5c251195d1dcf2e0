package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
	"github.com/etnz/coinfolio/timeline"
)

type valueCmd struct {
	user string
	date string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "show the total value of a portfolio" }
func (*valueCmd) Usage() string {
	return `cfl value [-u <user>] [-d <date>]

  Shows the USD value of the portfolio at a date (defaults to now):
  each held amount times the latest price known at that point.

Usage Examples:
$ cfl value
$ cfl value -u alice -d "2024/01/15"
`
}

func (p *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the valuation (defaults to now).")
}

func (p *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	v, err := repo.Valuation(user)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.ValueMarkdown(user, at, v.ValueAt(at)))
	return subcommands.ExitSuccess
}
