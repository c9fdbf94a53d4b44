package renderer

import (
	"github.com/etnz/papertrade"
)

// Holding is the view of a portfolio valued at the catalog prices.
// Numbers are kept in the exact decimal types so that they carry their own
// String method.
type Holding struct {
	// Cash is the cash balance.
	Cash papertrade.Money `json:"cash"`
	// Stocks is the list of held stocks, in ascending symbol order.
	Stocks []HoldingStock `json:"stocks"`
	// TotalStocksValue is the value of all listed stocks.
	TotalStocksValue papertrade.Money `json:"totalStocksValue"`
	// TotalValue is cash plus stocks.
	TotalValue papertrade.Money `json:"totalValue"`
}

// HoldingStock represents the position in a single stock.
type HoldingStock struct {
	Symbol      string              `json:"symbol"`
	Quantity    papertrade.Quantity `json:"quantity"`
	Listed      bool                `json:"listed"` // false when the catalog has no price for it
	Price       papertrade.Money    `json:"price"`
	MarketValue papertrade.Money    `json:"marketValue"`
}

// NewHolding values every held stock at its current catalog price.
func NewHolding(p *papertrade.Portfolio, c *papertrade.Catalog) *Holding {
	h := &Holding{
		Cash:             p.Cash(),
		Stocks:           make([]HoldingStock, 0),
		TotalStocksValue: papertrade.M(0, p.Currency()),
	}
	for symbol, q := range p.Holdings() {
		line := HoldingStock{Symbol: symbol, Quantity: q}
		if s, ok := c.Lookup(symbol); ok && s.Price().Currency() == p.Currency() {
			line.Listed = true
			line.Price = s.Price()
			line.MarketValue = s.Price().Mul(q)
			h.TotalStocksValue = h.TotalStocksValue.Add(line.MarketValue)
		}
		h.Stocks = append(h.Stocks, line)
	}
	h.TotalValue = p.Value(c)
	return h
}
