package renderer

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/papertrade"
)

func USD(v float64) papertrade.Money { return papertrade.M(v, "USD") }

// sample returns a portfolio that bought 10 AAPL and holds 2 XYZ that are not listed.
func sample(t *testing.T) *papertrade.Portfolio {
	t.Helper()
	at := time.Date(2025, time.August, 1, 10, 30, 0, 0, time.UTC)
	p, err := papertrade.Restore(USD(8500),
		map[string]papertrade.Quantity{"AAPL": papertrade.Q(10), "XYZ": papertrade.Q(2)},
		[]papertrade.Transaction{
			{ID: "1", Side: papertrade.CmdBuy, Symbol: "AAPL", Quantity: papertrade.Q(10), Price: USD(150), Time: at},
			{ID: "2", Side: papertrade.CmdSell, Symbol: "AAPL", Quantity: papertrade.Q(4), Price: USD(150), Time: at.Add(time.Hour)},
		})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMarket(t *testing.T) {
	got := Market(papertrade.DefaultCatalog("USD"))
	want := `
===== Market Data =====
AAPL : $150.00
AMZN : $3,300.00
GOOG : $2,800.00
TSLA : $700.00
========================
`
	if got != want {
		t.Errorf("Market() =\n%s\nwant\n%s", got, want)
	}
}

func TestPortfolio(t *testing.T) {
	got := Portfolio(sample(t), papertrade.DefaultCatalog("USD"))
	want := `
===== Portfolio =====
Cash Balance: $8,500.00
AAPL : 10 shares (Value: $1,500.00)
XYZ : 2 shares (Value: n/a)
======================
`
	if got != want {
		t.Errorf("Portfolio() =\n%s\nwant\n%s", got, want)
	}
}

func TestTransactions(t *testing.T) {
	got := Transactions(sample(t))
	want := `
===== Transactions =====
BUY 10 shares of AAPL @ $150.00 on Fri Aug  1 10:30:00 UTC 2025
SELL 4 shares of AAPL @ $150.00 on Fri Aug  1 11:30:00 UTC 2025
=========================
`
	if got != want {
		t.Errorf("Transactions() =\n%s\nwant\n%s", got, want)
	}
}

func TestNewHolding(t *testing.T) {
	h := NewHolding(sample(t), papertrade.DefaultCatalog("USD"))
	if len(h.Stocks) != 2 {
		t.Fatalf("NewHolding() has %d stocks, want 2", len(h.Stocks))
	}
	if !h.Stocks[0].Listed || h.Stocks[1].Listed {
		t.Errorf("Listed flags = %v, %v, want true, false", h.Stocks[0].Listed, h.Stocks[1].Listed)
	}
	if want := USD(1500); !h.TotalStocksValue.Equal(want) {
		t.Errorf("TotalStocksValue = %s, want %s", h.TotalStocksValue, want)
	}
	if want := USD(10000); !h.TotalValue.Equal(want) {
		t.Errorf("TotalValue = %s, want %s", h.TotalValue, want)
	}
}

func TestMarkdown(t *testing.T) {
	p := sample(t)
	c := papertrade.DefaultCatalog("USD")

	tests := []struct {
		name     string
		markdown string
		contains []string
	}{
		{
			name:     "market",
			markdown: MarketMarkdown(c),
			contains: []string{"# Market", "| AAPL | $150.00 |", "| TSLA | $700.00 |"},
		},
		{
			name:     "holding",
			markdown: HoldingMarkdown(NewHolding(p, c)),
			contains: []string{"# Portfolio", "Total value: **$10,000.00**", "| AAPL | 10 | $150.00 | $1,500.00 |", "| XYZ | 2 | n/a | n/a |", "Balance: **$8,500.00**"},
		},
		{
			name:     "empty holding",
			markdown: HoldingMarkdown(NewHolding(papertrade.NewPortfolio(USD(10)), c)),
			contains: []string{"No stocks held."},
		},
		{
			name:     "transactions",
			markdown: TransactionsMarkdown(slices.Collect(p.Transactions())),
			contains: []string{"| 2025-08-01 10:30:00 | BUY | AAPL | 10 | $150.00 | $1,500.00 |", "| SELL | AAPL | 4 |"},
		},
		{
			name:     "no transactions",
			markdown: TransactionsMarkdown(nil),
			contains: []string{"No transactions yet."},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if strings.Contains(tc.markdown, "error ") {
				t.Fatalf("template failed: %s", tc.markdown)
			}
			for _, want := range tc.contains {
				if !strings.Contains(tc.markdown, want) {
					t.Errorf("markdown does not contain %q:\n%s", want, tc.markdown)
				}
			}
		})
	}
}
