package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type clearCmd struct {
	user    string
	confirm bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "erase a user's entire transaction history" }
func (*clearCmd) Usage() string {
	return `cfl clear -confirm [-u <user>]

  Erases every transaction of the user's ledger. This is irreversible,
  so the -confirm flag is required.
`
}

func (p *clearCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "u", "", "User owning the portfolio.")
	f.BoolVar(&p.confirm, "confirm", false, "Confirm the irreversible deletion.")
}

func (p *clearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !p.confirm {
		fmt.Println("Refusing to erase a ledger without -confirm.")
		return subcommands.ExitUsageError
	}

	repo, err := openRepository()
	if err != nil {
		return fail(err)
	}
	user := resolveUser(p.user)
	if err := repo.Clear(user); err != nil {
		return fail(err)
	}

	fmt.Printf("Erased the ledger of %s\n", user)
	return subcommands.ExitSuccess
}
