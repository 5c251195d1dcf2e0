// Package cmd implements the CLI application to manage crypto
// portfolios.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/sqlstore"
	"github.com/etnz/coinfolio/timeline"
)

// Environment variables read at startup, optionally from a .env file.
const (
	EnvStorage = "COINFOLIO_STORAGE" // directory of the plain-file store
	EnvDB      = "COINFOLIO_DB"      // SQLite file, overrides the plain-file store
	EnvUser    = "COINFOLIO_USER"    // default user for every command
	EnvFeedURL = "COINFOLIO_FEED_URL"
)

// Commands lists every subcommand. A main package registers them all
// on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&initCmd{},
	&buyCmd{},
	&sellCmd{},
	&tradeCmd{},
	&clearCmd{},
	&listCmd{},
	&holdingsCmd{},

	&valueCmd{},
	&changeCmd{},
	&breakdownCmd{},
	&historyCmd{},

	&priceCmd{},
	&fetchCmd{},
	&trackCmd{},
	&importPricesCmd{},

	&topicCmd{},
}

func init() {
	// A .env file in the working directory seeds the environment, the
	// real environment wins.
	godotenv.Load()
}

// openRepository opens the configured store: the SQLite file when
// COINFOLIO_DB is set, the plain-file directory otherwise.
func openRepository() (*coinfolio.Repository, error) {
	var store coinfolio.Store
	if db := os.Getenv(EnvDB); db != "" {
		s, err := sqlstore.Open(db)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		dir := os.Getenv(EnvStorage)
		if dir == "" {
			dir = ".coinfolio"
		}
		s, err := coinfolio.NewDirStore(dir)
		if err != nil {
			return nil, err
		}
		store = s
	}
	return coinfolio.NewRepository(store)
}

// resolveUser returns the -u flag value, the COINFOLIO_USER variable,
// or "default".
func resolveUser(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if user := os.Getenv(EnvUser); user != "" {
		return user
	}
	return "default"
}

// parseInstant reads an optional -d flag value, zero meaning now.
func parseInstant(s string) (timeline.Time, error) {
	if s == "" {
		return 0, nil
	}
	return timeline.Parse(s)
}

// parseAmount reads a decimal amount from the command line.
func parseAmount(s string) (coinfolio.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return coinfolio.Quantity{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return coinfolio.Q(d), nil
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when rendering fails (e.g. output is not a tty).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// reportValue prints the user's portfolio value, so the effect of a
// mutation is immediately visible.
func reportValue(repo *coinfolio.Repository, user string) {
	v, err := repo.Valuation(user)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	fmt.Printf("Portfolio of %s is now worth %s\n", user, v.Value())
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
