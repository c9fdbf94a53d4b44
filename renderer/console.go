package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/papertrade"
)

// The console views are the screens of the interactive menu. Each one starts
// with an empty line and is framed by "=" rules.

// Market renders the list of tradeable stocks and their prices.
func Market(c *papertrade.Catalog) string {
	var b strings.Builder
	fmt.Fprintln(&b, "\n===== Market Data =====")
	for s := range c.Stocks() {
		fmt.Fprintf(&b, "%s : %s\n", s.Symbol(), s.Price())
	}
	fmt.Fprintln(&b, "========================")
	return b.String()
}

// Portfolio renders the cash balance and each holding valued at the catalog price.
func Portfolio(p *papertrade.Portfolio, c *papertrade.Catalog) string {
	h := NewHolding(p, c)
	var b strings.Builder
	fmt.Fprintln(&b, "\n===== Portfolio =====")
	fmt.Fprintf(&b, "Cash Balance: %s\n", h.Cash)
	for _, s := range h.Stocks {
		value := "n/a"
		if s.Listed {
			value = s.MarketValue.String()
		}
		fmt.Fprintf(&b, "%s : %s shares (Value: %s)\n", s.Symbol, s.Quantity, value)
	}
	fmt.Fprintln(&b, "======================")
	return b.String()
}

// Transactions renders the trade history, oldest first.
func Transactions(p *papertrade.Portfolio) string {
	var b strings.Builder
	fmt.Fprintln(&b, "\n===== Transactions =====")
	for tx := range p.Transactions() {
		fmt.Fprintln(&b, Transaction(tx))
	}
	fmt.Fprintln(&b, "=========================")
	return b.String()
}

// Transaction renders a transaction to a string.
func Transaction(tx papertrade.Transaction) string {
	return tx.String()
}
