package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/config"
	"github.com/etnz/papertrade/sqlite"
	"github.com/google/go-cmp/cmp"
)

func TestOpenStore(t *testing.T) {
	tests := []struct {
		path   string
		sqlite bool
	}{
		{"portfolio.jsonl", false},
		{"portfolio", false},
		{"data/portfolio.db", true},
		{"portfolio.SQLITE", true},
		{"portfolio.sqlite3", true},
	}
	for _, tc := range tests {
		store := OpenStore(tc.path)
		_, isSQLite := store.(*sqlite.Store)
		if isSQLite != tc.sqlite {
			t.Errorf("OpenStore(%q) = %T, want sqlite %v", tc.path, store, tc.sqlite)
		}
	}
}

func TestDecodePortfolio(t *testing.T) {
	cfg := config.Default()
	cfg.PortfolioFile = filepath.Join(t.TempDir(), "portfolio.jsonl")

	p, err := DecodePortfolio(cfg)
	if err != nil {
		t.Fatalf("DecodePortfolio() on a missing file error = %v", err)
	}
	if want := USD(10000); !p.Cash().Equal(want) {
		t.Errorf("Cash() = %s, want %s", p.Cash(), want)
	}

	if _, err := p.Buy(papertrade.NewStock("AAPL", USD(150)), papertrade.Q(2)); err != nil {
		t.Fatal(err)
	}
	if err := papertrade.SavePortfolio(cfg.PortfolioFile, p); err != nil {
		t.Fatal(err)
	}
	got, err := DecodePortfolio(cfg)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	if !got.Equal(p) {
		t.Errorf("DecodePortfolio() did not return the saved portfolio")
	}
}

func TestDecodePortfolio_Malformed(t *testing.T) {
	cfg := config.Default()
	cfg.PortfolioFile = filepath.Join(t.TempDir(), "portfolio.jsonl")
	if err := os.WriteFile(cfg.PortfolioFile, []byte("not json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := DecodePortfolio(cfg)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Errorf("DecodePortfolio() error = %v, want a decoding error", err)
	}
}

func TestTxFilter(t *testing.T) {
	p := papertrade.NewPortfolio(USD(10000))
	aapl := papertrade.NewStock("AAPL", USD(150))
	tsla := papertrade.NewStock("TSLA", USD(700))
	for _, trade := range []struct {
		stock papertrade.Stock
		sell  bool
	}{{aapl, false}, {tsla, false}, {aapl, false}, {aapl, true}, {tsla, true}} {
		var err error
		if trade.sell {
			_, err = p.Sell(trade.stock, papertrade.Q(1))
		} else {
			_, err = p.Buy(trade.stock, papertrade.Q(1))
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	summary := func(txs []papertrade.Transaction) []string {
		var s []string
		for _, tx := range txs {
			s = append(s, string(tx.Side)+" "+tx.Symbol)
		}
		return s
	}

	tests := []struct {
		name string
		cmd  txCmd
		want []string
	}{
		{"all", txCmd{}, []string{"buy AAPL", "buy TSLA", "buy AAPL", "sell AAPL", "sell TSLA"}},
		{"symbol", txCmd{symbol: " aapl"}, []string{"buy AAPL", "buy AAPL", "sell AAPL"}},
		{"head", txCmd{head: 2}, []string{"buy AAPL", "buy TSLA"}},
		{"tail", txCmd{tail: 2}, []string{"sell AAPL", "sell TSLA"}},
		{"symbol and tail", txCmd{symbol: "TSLA", tail: 1}, []string{"sell TSLA"}},
		{"head larger than list", txCmd{symbol: "TSLA", head: 10}, []string{"buy TSLA", "sell TSLA"}},
		{"unknown symbol", txCmd{symbol: "MSFT"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := summary(tc.cmd.filter(p))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	c := completion(config.Default())

	got := c.Sub["tx"].Flags["s"].Predict("")
	slices.Sort(got)
	if diff := cmp.Diff([]string{"AAPL", "AMZN", "GOOG", "TSLA"}, got); diff != "" {
		t.Errorf("tx -s predictions mismatch (-want +got):\n%s", diff)
	}

	topics := c.Sub["topic"].Args.Predict("")
	for _, want := range []string{"trade", "storage", "*"} {
		if !slices.Contains(topics, want) {
			t.Errorf("topic predictions %v do not contain %q", topics, want)
		}
	}

	for _, name := range []string{"trade", "market", "holding", "tx", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("no completion for the %q command", name)
		}
	}
}
