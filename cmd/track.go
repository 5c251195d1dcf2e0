package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/coinfolio"
)

type trackCmd struct {
	interval time.Duration
}

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "poll the price feed and record quotes until interrupted" }
func (*trackCmd) Usage() string {
	return `cfl track [-interval <duration>]

  Polls the configured ticker feed (COINFOLIO_FEED_URL, or a public
  default) and records every quote. Runs until interrupted; a failing
  poll is logged and retried at the next tick.
`
}

func (p *trackCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&p.interval, "interval", coinfolio.DefaultTrackInterval, "Interval between polls.")
}

func (p *trackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}

	tracker := &coinfolio.Tracker{
		Repo:     repo,
		URL:      os.Getenv(EnvFeedURL),
		Interval: p.interval,
	}
	fmt.Printf("Tracking prices every %s, interrupt to stop.\n", p.interval)
	if err := tracker.Run(ctx); err != nil && err != context.Canceled {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
