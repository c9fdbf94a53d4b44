package papertrade

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Errors reported by trades. They are wrapped with context, use errors.Is.
var (
	ErrInvalidQuantity    = errors.New("quantity must be a positive whole number")
	ErrInsufficientFunds  = errors.New("not enough balance")
	ErrInsufficientShares = errors.New("not enough shares")
	ErrUnknownSymbol      = errors.New("stock not found")
	ErrCurrencyMismatch   = errors.New("currency mismatch")
)

// Portfolio is the cash balance, the share holdings and the trade history of the user.
//
// Holdings never contain a zero entry, and transactions are in execution order.
type Portfolio struct {
	cash         Money
	holdings     map[string]Quantity // index quantities by symbol
	transactions []Transaction
}

// NewPortfolio creates a portfolio holding only cash.
func NewPortfolio(cash Money) *Portfolio {
	return &Portfolio{
		cash:         cash,
		holdings:     make(map[string]Quantity),
		transactions: make([]Transaction, 0),
	}
}

// Restore rebuilds a portfolio from persisted parts, checking that they
// respect the portfolio invariants.
func Restore(cash Money, holdings map[string]Quantity, transactions []Transaction) (*Portfolio, error) {
	p := NewPortfolio(cash)
	for symbol, q := range holdings {
		if symbol == "" || symbol != NormalizeSymbol(symbol) {
			return nil, fmt.Errorf("invalid holding symbol %q", symbol)
		}
		if !q.IsShares() {
			return nil, fmt.Errorf("holding %s: %w, got %s", symbol, ErrInvalidQuantity, q)
		}
		p.holdings[symbol] = q
	}
	for i, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("transaction #%d: %w", i+1, err)
		}
		if tx.Price.Currency() != cash.Currency() {
			return nil, fmt.Errorf("transaction #%d: %w: %s != %s", i+1, ErrCurrencyMismatch, tx.Price.Currency(), cash.Currency())
		}
	}
	p.transactions = append(p.transactions, transactions...)
	return p, nil
}

// Buy purchases quantity shares of stock at its current price.
//
// It fails, leaving the portfolio unchanged, if quantity is not a positive
// whole number or if the cost exceeds the cash balance.
func (p *Portfolio) Buy(stock Stock, quantity Quantity) (Transaction, error) {
	if !quantity.IsShares() {
		return Transaction{}, fmt.Errorf("cannot buy %s shares of %s: %w", quantity, stock.Symbol(), ErrInvalidQuantity)
	}
	if err := p.checkCurrency(stock); err != nil {
		return Transaction{}, err
	}
	cost := stock.Price().Mul(quantity)
	if cost.GreaterThan(p.cash) {
		return Transaction{}, fmt.Errorf("cannot buy %s shares of %s for %s, cash balance is %s: %w", quantity, stock.Symbol(), cost, p.cash, ErrInsufficientFunds)
	}

	p.cash = p.cash.Sub(cost)
	p.holdings[stock.Symbol()] = p.holdings[stock.Symbol()].Add(quantity)
	tx := newTransaction(CmdBuy, stock, quantity)
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

// Sell sells quantity shares of stock at its current price.
//
// It fails, leaving the portfolio unchanged, if quantity is not a positive
// whole number or if fewer shares are held. Selling the last share removes the
// holding.
func (p *Portfolio) Sell(stock Stock, quantity Quantity) (Transaction, error) {
	if !quantity.IsShares() {
		return Transaction{}, fmt.Errorf("cannot sell %s shares of %s: %w", quantity, stock.Symbol(), ErrInvalidQuantity)
	}
	if err := p.checkCurrency(stock); err != nil {
		return Transaction{}, err
	}
	held, ok := p.holdings[stock.Symbol()]
	if !ok || held.LessThan(quantity) {
		return Transaction{}, fmt.Errorf("cannot sell %s shares of %s, holding %s: %w", quantity, stock.Symbol(), held, ErrInsufficientShares)
	}

	p.cash = p.cash.Add(stock.Price().Mul(quantity))
	if left := held.Sub(quantity); left.IsZero() {
		delete(p.holdings, stock.Symbol())
	} else {
		p.holdings[stock.Symbol()] = left
	}
	tx := newTransaction(CmdSell, stock, quantity)
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

func (p *Portfolio) checkCurrency(stock Stock) error {
	if c := stock.Price().Currency(); c != p.cash.Currency() {
		return fmt.Errorf("%s is traded in %s, cash is in %s: %w", stock.Symbol(), c, p.cash.Currency(), ErrCurrencyMismatch)
	}
	return nil
}

// Cash returns the cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Currency returns the currency of the cash balance.
func (p *Portfolio) Currency() string { return p.cash.Currency() }

// Holding returns the number of shares held for symbol, zero if none.
func (p *Portfolio) Holding(symbol string) Quantity {
	return p.holdings[NormalizeSymbol(symbol)]
}

// Holdings iterates over held symbols in ascending order.
func (p *Portfolio) Holdings() iter.Seq2[string, Quantity] {
	return func(yield func(string, Quantity) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(p.holdings)) {
			if !yield(symbol, p.holdings[symbol]) {
				return
			}
		}
	}
}

// Transactions iterates over transactions in execution order.
func (p *Portfolio) Transactions() iter.Seq[Transaction] {
	return slices.Values(p.transactions)
}

// Len returns the number of transactions.
func (p *Portfolio) Len() int { return len(p.transactions) }

// Value returns the cash balance plus the holdings marked to the catalog
// prices. Holdings not listed in the catalog, or listed in another currency,
// are ignored.
func (p *Portfolio) Value(c *Catalog) Money {
	total := p.cash
	for symbol, q := range p.Holdings() {
		if s, ok := c.Lookup(symbol); ok && s.Price().Currency() == total.Currency() {
			total = total.Add(s.Price().Mul(q))
		}
	}
	return total
}

// Equal reports whether both portfolios have the same cash, holdings and transactions.
func (p *Portfolio) Equal(o *Portfolio) bool {
	if !p.cash.Equal(o.cash) || len(p.holdings) != len(o.holdings) || len(p.transactions) != len(o.transactions) {
		return false
	}
	for symbol, q := range p.holdings {
		if oq, ok := o.holdings[symbol]; !ok || !q.Equal(oq) {
			return false
		}
	}
	for i, tx := range p.transactions {
		if !tx.Equal(o.transactions[i]) {
			return false
		}
	}
	return true
}
