package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
	"github.com/etnz/coinfolio/timeline"
)

type breakdownCmd struct {
	user  string
	date  string
	daily bool
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "show each symbol's contribution to the portfolio value" }
func (*breakdownCmd) Usage() string {
	return `cfl breakdown [-u <user>] [-d <date>] [-24h]

  Lists each held symbol with its amount, value and share of the
  total, biggest positions first. With -24h each row also shows the
  symbol's price move over the last day.
`
}

func (p *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.StringVar(&p.date, "d", "", "Date of the breakdown (defaults to now).")
	f.BoolVar(&p.daily, "24h", false, "Show each symbol's 24h price move instead of its share.")
}

func (p *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rows := v.BreakdownAt(at)
	if p.daily {
		printMarkdown(renderer.AssetTableMarkdown(user, at, rows, repo.Market()))
	} else {
		printMarkdown(renderer.BreakdownMarkdown(user, rows))
	}
	return subcommands.ExitSuccess
}
