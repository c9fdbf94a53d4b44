package papertrade

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func samplePortfolio(t *testing.T) *Portfolio {
	t.Helper()
	defer fixedClock(time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC))()

	p := NewPortfolio(USD(10000))
	must(p.Buy(AAPL, Q(10)))
	must(p.Buy(TSLA, Q(3)))
	must(p.Sell(AAPL, Q(4)))
	return p
}

func TestEncodePortfolio(t *testing.T) {
	p := NewPortfolio(USD(10000))
	p.transactions = append(p.transactions, Transaction{
		ID:       "0198",
		Side:     CmdBuy,
		Symbol:   "AAPL",
		Quantity: Q(10),
		Price:    USD(150.25),
		Time:     time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC),
	})
	p.holdings["AAPL"] = Q(10)
	p.cash = USD(8497.5)

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}

	want := `{"command":"cash","amount":8497.5,"currency":"USD"}
{"command":"holding","symbol":"AAPL","quantity":10}
{"command":"buy","time":"2025-08-01T10:00:00Z","id":"0198","symbol":"AAPL","quantity":10,"price":150.25,"currency":"USD"}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodePortfolio() =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodePortfolio_RoundTrip(t *testing.T) {
	p := samplePortfolio(t)

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}
	got, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	if !got.Equal(p) {
		t.Errorf("DecodePortfolio(EncodePortfolio(p)) = %v, want %v", got, p)
	}
}

func TestDecodePortfolio_LocalTime(t *testing.T) {
	input := `{"command":"cash","amount":8500,"currency":"USD"}
{"command":"holding","symbol":"AAPL","quantity":10}
{"command":"buy","time":"2025-08-01T12:30:00+02:00","id":"1","symbol":"AAPL","quantity":10,"price":150,"currency":"USD"}
`
	p, err := DecodePortfolio(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	txs := slices.Collect(p.Transactions())
	if len(txs) != 1 {
		t.Fatalf("DecodePortfolio() has %d transactions, want 1", len(txs))
	}
	at := txs[0].Time
	if at.Location() != time.Local {
		t.Errorf("transaction time is in %v, want the local zone", at.Location())
	}
	executed := time.Date(2025, time.August, 1, 10, 30, 0, 0, time.UTC)
	if !at.Equal(executed) {
		t.Errorf("transaction time = %v, want %v", at, executed)
	}
	if got, want := txs[0].String(), "on "+executed.Local().Format(TimeFormat); !strings.HasSuffix(got, want) {
		t.Errorf("String() = %q, want suffix %q", got, want)
	}
}

func TestDecodePortfolio_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not json", input: "portfolio.dat\n"},
		{name: "duplicate cash", input: `{"command":"cash","amount":1,"currency":"USD"}
{"command":"cash","amount":2,"currency":"USD"}`},
		{name: "unknown command", input: `{"command":"cash","amount":1,"currency":"USD"}
{"command":"dividend","symbol":"AAPL"}`},
		{name: "unknown field", input: `{"command":"cash","amount":1,"currency":"USD","bonus":3}`},
		{name: "zero holding", input: `{"command":"cash","amount":1,"currency":"USD"}
{"command":"holding","symbol":"AAPL","quantity":0}`},
		{name: "duplicate holding", input: `{"command":"cash","amount":1,"currency":"USD"}
{"command":"holding","symbol":"AAPL","quantity":1}
{"command":"holding","symbol":"AAPL","quantity":1}`},
		{name: "negative trade", input: `{"command":"cash","amount":1,"currency":"USD"}
{"command":"sell","time":"2025-08-01T10:00:00Z","symbol":"AAPL","quantity":-1,"price":150,"currency":"USD"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodePortfolio(strings.NewReader(tc.input)); err == nil {
				t.Errorf("DecodePortfolio(%q) succeeded, want an error", tc.input)
			}
		})
	}
}

func TestSaveLoadPortfolio(t *testing.T) {
	p := samplePortfolio(t)
	store := JSONLFile(filepath.Join(t.TempDir(), "nested", "portfolio.jsonl"))

	if err := store.Save(p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(p) {
		t.Errorf("Load() after Save() differs from the saved portfolio")
	}
	if want := USD(8500 - 2100 + 600); !got.Cash().Equal(want) {
		t.Errorf("loaded Cash() = %s, want %s", got.Cash(), want)
	}
}

func TestLoadPortfolio_Missing(t *testing.T) {
	_, err := LoadPortfolio(filepath.Join(t.TempDir(), "absent.jsonl"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadPortfolio() error = %v, want fs.ErrNotExist", err)
	}
}
