package papertrade

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// number is what the M and Q constructors accept.
type number interface {
	int | int64 | float64 | decimal.Decimal
}

func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	}
	panic(fmt.Sprintf("unsupported number %T", value))
}

// Quantity is a number of shares. Trades only accept whole, positive
// quantities, see IsShares.
type Quantity struct {
	value decimal.Decimal
}

// Q returns the quantity for value.
func Q[T number](value T) Quantity { return Quantity{value: newDecimal(value)} }

// ParseQuantity parses a quantity typed by the user, like "10".
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{value: d}, nil
}

func (q Quantity) Equal(o Quantity) bool    { return q.value.Equal(o.value) }
func (q Quantity) LessThan(o Quantity) bool { return q.value.LessThan(o.value) }
func (q Quantity) Add(o Quantity) Quantity  { return Quantity{value: q.value.Add(o.value)} }
func (q Quantity) Sub(o Quantity) Quantity  { return Quantity{value: q.value.Sub(o.value)} }
func (q Quantity) IsZero() bool             { return q.value.IsZero() }
func (q Quantity) String() string           { return q.value.String() }

// IsShares reports whether q is a whole, strictly positive number of shares.
func (q Quantity) IsShares() bool { return q.value.IsPositive() && q.value.IsInteger() }

func (q Quantity) MarshalJSON() ([]byte, error)  { return q.value.MarshalJSON() }
func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }
