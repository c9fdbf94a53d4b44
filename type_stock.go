package papertrade

import "strings"

// Stock is a tradeable security listed in the market catalog.
type Stock struct {
	symbol string // The ticker symbol, always upper case.
	price  Money  // The current price of one share.
}

// NewStock returns the stock listed under symbol, normalized, at price.
func NewStock(symbol string, price Money) Stock {
	return Stock{
		symbol: NormalizeSymbol(symbol),
		price:  price,
	}
}

// Symbol returns the ticker symbol of the stock.
func (s Stock) Symbol() string {
	return s.symbol
}

// Price returns the current price of one share.
func (s Stock) Price() Money {
	return s.price
}

// NormalizeSymbol returns the canonical form of a ticker symbol as typed by a user.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
