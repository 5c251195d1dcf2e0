package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio/renderer"
	"github.com/etnz/coinfolio/timeline"
)

type historyCmd struct {
	user string
	days int
	step time.Duration
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the portfolio value over time" }
func (*historyCmd) Usage() string {
	return `cfl history [-u <user>] [-days <n>] [-step <duration>]

  Samples the portfolio value over the last days (default 30), one
  sample per step (default 24h), and renders them as a table.
`
}

func (p *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.IntVar(&p.days, "days", 30, "How many days back the history starts.")
	f.DurationVar(&p.step, "step", timeline.Day, "Interval between samples.")
}

func (p *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	v, err := repo.Valuation(user)
	if err != nil {
		return fail(err)
	}

	to := timeline.Now()
	from := to.Add(-time.Duration(p.days) * timeline.Day)
	points := v.History(from, to, p.step)

	printMarkdown(renderer.HistoryMarkdown(user, points))
	return subcommands.ExitSuccess
}
