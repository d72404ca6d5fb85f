// Command wealthflow is the command-line front end of the WealthFlow tracker.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// register adds every command to c, grouped as they appear in the help output.
func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	c.Register(&versionCmd{}, "")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&accountsCmd{}, "reports")
	c.Register(&transactionsCmd{}, "reports")
	c.Register(&portfolioCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")
	c.Register(&adviseCmd{}, "reports")

	c.Register(&addAccountCmd{}, "ledger")
	c.Register(&deleteAccountCmd{}, "ledger")
	c.Register(&addTxCmd{}, "ledger")
	c.Register(&addStockCmd{}, "ledger")
	c.Register(&updateStockCmd{}, "ledger")

	c.Register(&tokenCmd{}, "identity")
	c.Register(&watchCmd{}, "identity")
}
