package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
	"github.com/etnz/coinfolio/timeline"
)

type changeCmd struct {
	user   string
	date   string
	window time.Duration
}

func (*changeCmd) Name() string     { return "change" }
func (*changeCmd) Synopsis() string { return "show the evolution of a portfolio value over a window" }
func (*changeCmd) Usage() string {
	return `cfl change [-u <user>] [-d <date>] [-window <duration>]

  Compares the portfolio value at a date (defaults to now) against its
  value one window earlier (defaults to 24h). Both measurements use the
  holdings and prices of their own instant.

Usage Examples:
$ cfl change
$ cfl change -window 168h
`
}

func (p *changeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "End of the window (defaults to now).")
	f.DurationVar(&p.window, "window", timeline.Day, "Width of the comparison window.")
}

func (p *changeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	change := v.ChangeOver(p.window, at)
	printMarkdown(renderer.ChangeMarkdown(user, at.Add(-p.window), at, change))
	return subcommands.ExitSuccess
}
