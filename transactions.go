package papertrade

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CommandType is a typed string for identifying the lines of a portfolio file.
type CommandType string

// Command types used in the portfolio file.
const (
	CmdCash    CommandType = "cash"
	CmdHolding CommandType = "holding"
	CmdBuy     CommandType = "buy"
	CmdSell    CommandType = "sell"
)

// Side is the direction of a trade: CmdBuy or CmdSell.
type Side = CommandType

// TimeFormat is the layout used to display transaction timestamps.
const TimeFormat = time.UnixDate

// Transaction records one executed trade. It is never modified once created.
type Transaction struct {
	ID       string    // ID is a time ordered unique identifier (UUIDv7).
	Side     Side      // Side is either CmdBuy or CmdSell.
	Symbol   string    // Symbol is the ticker of the traded stock.
	Quantity Quantity  // Quantity is the number of shares traded.
	Price    Money     // Price is the price of one share at execution time.
	Time     time.Time // Time is when the trade was executed.
}

// newTransaction stamps a trade with a fresh id and the current time.
func newTransaction(side Side, stock Stock, quantity Quantity) Transaction {
	return Transaction{
		ID:       newID(),
		Side:     side,
		Symbol:   stock.Symbol(),
		Quantity: quantity,
		Price:    stock.Price(),
		Time:     now(),
	}
}

// now is the clock used to stamp transactions, tests may replace it.
var now = func() time.Time { return time.Now().Round(0) }

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Amount returns the cash exchanged by the trade.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// String formats the transaction as "BUY 10 shares of AAPL @ $150.00 on Mon Jan  2 15:04:05 UTC 2006".
func (t Transaction) String() string {
	return fmt.Sprintf("%s %s shares of %s @ %s on %s",
		strings.ToUpper(string(t.Side)), t.Quantity, t.Symbol, t.Price, t.Time.Format(TimeFormat))
}

// Equal reports whether both transactions record the same trade.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Side == o.Side &&
		t.Symbol == o.Symbol &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Time.Equal(o.Time)
}

// Validate checks that the transaction could have been produced by a trade.
func (t Transaction) Validate() error {
	if t.Side != CmdBuy && t.Side != CmdSell {
		return fmt.Errorf("unknown transaction side %q", t.Side)
	}
	if t.Symbol == "" {
		return errors.New("transaction symbol is missing")
	}
	if !t.Quantity.IsShares() {
		return fmt.Errorf("%s transaction quantity must be a positive whole number, got %s", t.Side, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%s transaction price must be positive, got %s", t.Side, t.Price)
	}
	if t.Time.IsZero() {
		return errors.New("transaction time is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Side)
	w.Append("time", t.Time)
	w.Optional("id", t.ID)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.Optional("currency", t.Price.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp tradeCmd
	if err := unmarshal(data, &temp); err != nil {
		return err
	}
	*t = temp.Transaction()
	return nil
}
