package papertrade

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Catalog is the read-only list of stocks that can be traded, indexed by symbol.
//
// A Catalog is built once at startup and never changes afterwards.
type Catalog struct {
	index map[string]Stock
}

// NewCatalog returns a catalog listing the given stocks. A later stock
// replaces an earlier one with the same symbol.
func NewCatalog(stocks ...Stock) *Catalog {
	c := &Catalog{index: make(map[string]Stock, len(stocks))}
	for _, s := range stocks {
		c.index[s.Symbol()] = s
	}
	return c
}

// DefaultCatalog returns the seeded market: AAPL, GOOG, TSLA and AMZN.
func DefaultCatalog(currency string) *Catalog {
	return NewCatalog(
		NewStock("AAPL", M(150, currency)),
		NewStock("GOOG", M(2800, currency)),
		NewStock("TSLA", M(700, currency)),
		NewStock("AMZN", M(3300, currency)),
	)
}

// Lookup returns the stock listed under symbol. The symbol is normalized first.
func (c *Catalog) Lookup(symbol string) (Stock, bool) {
	s, ok := c.index[NormalizeSymbol(symbol)]
	return s, ok
}

// Get is Lookup reporting an unlisted symbol as ErrUnknownSymbol.
func (c *Catalog) Get(symbol string) (Stock, error) {
	s, ok := c.Lookup(symbol)
	if !ok {
		return Stock{}, fmt.Errorf("%q: %w", symbol, ErrUnknownSymbol)
	}
	return s, nil
}

// Has reports whether symbol is listed.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.Lookup(symbol)
	return ok
}

// Len returns the number of listed stocks.
func (c *Catalog) Len() int { return len(c.index) }

// Symbols returns the listed symbols in ascending order.
func (c *Catalog) Symbols() []string {
	return slices.Sorted(maps.Keys(c.index))
}

// Stocks iterates over the listed stocks in ascending symbol order.
func (c *Catalog) Stocks() iter.Seq[Stock] {
	return func(yield func(Stock) bool) {
		for _, symbol := range c.Symbols() {
			if !yield(c.index[symbol]) {
				return
			}
		}
	}
}
