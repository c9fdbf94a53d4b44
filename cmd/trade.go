package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

type tradeCmd struct{}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "open the interactive trading menu (default)" }
func (*tradeCmd) Usage() string {
	return `pts trade

  Opens the interactive menu to view the market, buy and sell stocks and view
  the portfolio. The saved portfolio is loaded first, and saved again on
  "Save & Exit". This is what pts does when run without a command.
`
}

func (*tradeCmd) SetFlags(f *flag.FlagSet) {}

func (*tradeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return Trade(ctx)
}

// Trade runs the interactive menu on the standard input and output.
func Trade(_ context.Context) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	s := NewSession(os.Stdin, os.Stdout, cfg.Catalog(), papertrade.NewPortfolio(cfg.StartingCash()), OpenStore(cfg.PortfolioFile))
	s.Load()
	if err := s.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
