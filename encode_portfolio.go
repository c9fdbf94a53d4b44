package papertrade

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// A portfolio file is a JSONL stream:
//
//	{"command":"cash","amount":8500,"currency":"USD"}
//	{"command":"holding","symbol":"AAPL","quantity":10}
//	{"command":"buy","time":"2025-08-01T10:00:00Z","id":"...","symbol":"AAPL","quantity":10,"price":150,"currency":"USD"}
//
// Exactly one cash line, at most one holding line per symbol, and one line per
// transaction, in execution order.

// amountCmd is a specialized struct to read an amount in two fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money {
	return M(a.Amount, a.Currency)
}

// cashCmd is a specialized struct for decoding the cash line.
type cashCmd struct {
	Command CommandType `json:"command"`
	amountCmd
}

// holdingCmd is a specialized struct for decoding a holding line.
type holdingCmd struct {
	Command  CommandType `json:"command"`
	Symbol   string      `json:"symbol"`
	Quantity Quantity    `json:"quantity"`
}

// tradeCmd is a specialized struct for decoding a buy or sell line.
type tradeCmd struct {
	Command  CommandType     `json:"command"`
	Time     time.Time       `json:"time"`
	ID       string          `json:"id"`
	Symbol   string          `json:"symbol"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

func (t tradeCmd) Transaction() Transaction {
	return Transaction{
		ID:       t.ID,
		Side:     t.Command,
		Symbol:   t.Symbol,
		Quantity: t.Quantity,
		Price:    M(t.Price, t.Currency),
		Time:     t.Time.Local(), // back to the zone fresh trades are stamped in
	}
}

// unmarshal decodes a single line, rejecting fields it does not know.
func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// DecodePortfolio decodes a portfolio from a stream of JSONL data.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var cash *Money
	holdings := make(map[string]Quantity)
	transactions := make([]Transaction, 0)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineBytes := scanner.Bytes()
		if len(bytes.TrimSpace(lineBytes)) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", lineNumber, string(lineBytes), err)
		}

		switch identifier.Command {
		case CmdCash:
			if cash != nil {
				return nil, fmt.Errorf("line %d: duplicate cash line", lineNumber)
			}
			var temp cashCmd
			if err := unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			m := temp.Money()
			cash = &m
		case CmdHolding:
			var temp holdingCmd
			if err := unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			if _, exists := holdings[temp.Symbol]; exists {
				return nil, fmt.Errorf("line %d: duplicate holding for %q", lineNumber, temp.Symbol)
			}
			holdings[temp.Symbol] = temp.Quantity
		case CmdBuy, CmdSell:
			var tx Transaction
			if err := tx.UnmarshalJSON(lineBytes); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			transactions = append(transactions, tx)
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", lineNumber, identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cash == nil {
		return nil, fmt.Errorf("missing %q line", CmdCash)
	}
	return Restore(*cash, holdings, transactions)
}

// EncodePortfolio writes a portfolio in its canonical JSONL form.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	bw := bufio.NewWriter(w)
	writeLine := func(b []byte, err error) error {
		if err != nil {
			return err
		}
		bw.Write(b)
		return bw.WriteByte('\n')
	}

	var c jsonObjectWriter
	c.Append("command", CmdCash)
	c.EmbedFrom(p.cash)
	if err := writeLine(c.MarshalJSON()); err != nil {
		return fmt.Errorf("encoding cash: %w", err)
	}

	for symbol, q := range p.Holdings() {
		var h jsonObjectWriter
		h.Append("command", CmdHolding)
		h.Append("symbol", symbol)
		h.Append("quantity", q)
		if err := writeLine(h.MarshalJSON()); err != nil {
			return fmt.Errorf("encoding holding %s: %w", symbol, err)
		}
	}

	for tx := range p.Transactions() {
		if err := writeLine(tx.MarshalJSON()); err != nil {
			return fmt.Errorf("encoding transaction %s: %w", tx.ID, err)
		}
	}
	return bw.Flush()
}
