package papertrade

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the seeded market and of a fresh portfolio.
const DefaultCurrency = "USD"

// Money is an exact amount in a currency, in major units.
//
// Money with an empty currency adopts the currency of the other operand in
// arithmetic. Mixing two different currencies panics: portfolios check the
// currency of a stock before trading it.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns the money for value in currency.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal string like "150.25" into Money.
func ParseMoney(value, currency string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return Money{value: d, cur: currency}, nil
}

// String formats the amount with the currency symbol, grouping and fraction
// digits, e.g. "$1,500.00".
func (m Money) String() string {
	// money.New never returns a nil currency, unknown codes get a default format.
	cur := money.New(0, m.cur).Currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// Decimal returns the exact amount in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Currency returns the ISO 4217 code, empty for an amount without currency.
func (m Money) Currency() string { return m.cur }

// Equal reports whether both amounts and currencies are the same.
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.value.IsZero() }

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool { return m.value.IsPositive() }

// GreaterThan compares amounts, the currency is not checked.
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }

// Mul returns the price of q units.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Add returns m + n. It panics if both have different, non empty, currencies.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: sameCurrency(m, n)} }

// Sub returns m - n. It panics if both have different, non empty, currencies.
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: sameCurrency(m, n)} }

func sameCurrency(a, b Money) string {
	switch {
	case a.cur == "":
		return b.cur
	case b.cur == "", a.cur == b.cur:
		return a.cur
	}
	panic("currency mismatch " + a.cur + " != " + b.cur)
}

// MarshalJSON writes the money as an object with an exact "amount" and a "currency".
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Optional("currency", m.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the object written by MarshalJSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var a amountCmd
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = a.Money()
	return nil
}
