// Command pts is a paper trading simulator: buy and sell stocks from a fixed
// price list and keep the portfolio between runs.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/papertrade/cmd"
	"github.com/etnz/papertrade/logger"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx := context.Background()

	var status subcommands.ExitStatus
	if flag.NArg() == 0 {
		status = cmd.Trade(ctx)
	} else {
		status = commander.Execute(ctx)
	}
	logger.Sync()
	os.Exit(int(status))
}
