package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	symbol string
	head   int
	tail   int
	raw    bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of the portfolio" }
func (*txCmd) Usage() string {
	return `pts tx [-s <symbol>] [-head <n> | -tail <n>] [-raw]

  Lists the buy and sell transactions, oldest first, with options for
  filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Show only the transactions on this symbol.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
	f.BoolVar(&p.raw, "raw", false, "print the markdown source")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	pf, err := DecodePortfolio(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(os.Stdout, renderer.TransactionsMarkdown(p.filter(pf)), p.raw)
	return subcommands.ExitSuccess
}

// filter selects the transactions to list.
func (p *txCmd) filter(pf *papertrade.Portfolio) []papertrade.Transaction {
	symbol := papertrade.NormalizeSymbol(p.symbol)
	var transactions []papertrade.Transaction
	for tx := range pf.Transactions() {
		if symbol == "" || tx.Symbol == symbol {
			transactions = append(transactions, tx)
		}
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}
	return transactions
}
