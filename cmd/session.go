package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/logger"
	"github.com/etnz/papertrade/renderer"
)

const menu = `
===== Stock Trading Menu =====
1. View Market Data
2. Buy Stock
3. Sell Stock
4. View Portfolio
5. View Transactions
6. Save & Exit
Choose an option: `

// Session is the interactive trading menu over a portfolio and a catalog.
//
// Input is read as whitespace separated tokens, so a whole session can be
// scripted on a single line.
type Session struct {
	catalog   *papertrade.Catalog
	portfolio *papertrade.Portfolio
	store     papertrade.Store
	in        *bufio.Scanner
	out       io.Writer
}

// NewSession creates a menu session trading p against c, saving to store.
func NewSession(in io.Reader, out io.Writer, c *papertrade.Catalog, p *papertrade.Portfolio, store papertrade.Store) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Session{
		catalog:   c,
		portfolio: p,
		store:     store,
		in:        scanner,
		out:       out,
	}
}

// Portfolio returns the current portfolio.
func (s *Session) Portfolio() *papertrade.Portfolio { return s.portfolio }

// Load replaces the portfolio with the saved one. When nothing can be loaded
// the portfolio is left as is.
func (s *Session) Load() bool {
	p, err := s.store.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Get().Debugw("no saved portfolio", "store", s.store)
		} else {
			logger.Get().Warnw("cannot load portfolio", "store", s.store, "error", err)
		}
		fmt.Fprintln(s.out, "⚠ No saved portfolio found.")
		return false
	}
	s.portfolio = p
	logger.Get().Infow("portfolio loaded", "store", s.store, "cash", p.Cash(), "transactions", p.Len())
	fmt.Fprintln(s.out, "📂 Portfolio loaded!")
	s.checkCurrency()
	return true
}

// checkCurrency warns when the market is priced in another currency than the
// portfolio: such stocks can be neither traded nor valued.
func (s *Session) checkCurrency() {
	var foreign []string
	for stock := range s.catalog.Stocks() {
		if c := stock.Price().Currency(); c != s.portfolio.Currency() && !slices.Contains(foreign, c) {
			foreign = append(foreign, c)
		}
	}
	if len(foreign) == 0 {
		return
	}
	logger.Get().Warnw("market and portfolio currencies differ", "portfolio", s.portfolio.Currency(), "market", foreign)
	fmt.Fprintf(s.out, "⚠ Portfolio is in %s but market prices are in %s: those stocks cannot be traded.\n",
		s.portfolio.Currency(), strings.Join(foreign, ", "))
}

// Save writes the portfolio to the store.
func (s *Session) Save() error {
	if err := s.store.Save(s.portfolio); err != nil {
		logger.Get().Errorw("cannot save portfolio", "store", s.store, "error", err)
		fmt.Fprintf(s.out, "❌ Could not save portfolio: %v\n", err)
		return err
	}
	logger.Get().Infow("portfolio saved", "store", s.store, "cash", s.portfolio.Cash(), "transactions", s.portfolio.Len())
	fmt.Fprintln(s.out, "💾 Portfolio saved!")
	return nil
}

// Run displays the menu and handles choices until "Save & Exit" is chosen or
// the input ends. Reaching the end of the input does not save. A failed save
// is reported on the output and ends the session like a successful one; the
// returned error is only for input read failures.
func (s *Session) Run() error {
	for {
		fmt.Fprint(s.out, menu)
		token, ok := s.next()
		if !ok {
			return s.closed()
		}
		choice, err := strconv.Atoi(token)
		if err != nil {
			choice = 0
		}
		switch choice {
		case 1:
			fmt.Fprint(s.out, renderer.Market(s.catalog))
		case 2:
			ok = s.trade(papertrade.CmdBuy)
		case 3:
			ok = s.trade(papertrade.CmdSell)
		case 4:
			fmt.Fprint(s.out, renderer.Portfolio(s.portfolio, s.catalog))
		case 5:
			fmt.Fprint(s.out, renderer.Transactions(s.portfolio))
		case 6:
			s.Save() // a failure is reported, the session ends anyway
			return nil
		default:
			logger.Get().Debugw("invalid menu choice", "input", token)
			fmt.Fprintln(s.out, "Invalid choice!")
		}
		if !ok {
			return s.closed()
		}
	}
}

// trade prompts for a symbol and a quantity then buys or sells. It returns
// false if the input ended.
func (s *Session) trade(side papertrade.Side) bool {
	fmt.Fprint(s.out, "Enter stock symbol: ")
	symbol, ok := s.next()
	if !ok {
		return false
	}
	stock, err := s.catalog.Get(symbol)
	if err != nil {
		logger.Get().Debugw("cannot trade", "error", err)
		fmt.Fprintln(s.out, "❌ Stock not found!")
		return true
	}

	fmt.Fprint(s.out, "Enter quantity: ")
	token, ok := s.next()
	if !ok {
		return false
	}
	quantity, err := papertrade.ParseQuantity(token)
	if err != nil || !quantity.IsShares() {
		logger.Get().Debugw("invalid quantity", "input", token)
		fmt.Fprintln(s.out, "❌ Invalid quantity!")
		return true
	}

	var tx papertrade.Transaction
	if side == papertrade.CmdBuy {
		tx, err = s.portfolio.Buy(stock, quantity)
	} else {
		tx, err = s.portfolio.Sell(stock, quantity)
	}

	switch {
	case err == nil:
		logger.Get().Infow("trade executed", "id", tx.ID, "side", tx.Side, "symbol", tx.Symbol, "quantity", tx.Quantity, "price", tx.Price)
		if side == papertrade.CmdBuy {
			fmt.Fprintf(s.out, "✅ Bought %s shares of %s\n", quantity, stock.Symbol())
		} else {
			fmt.Fprintf(s.out, "✅ Sold %s shares of %s\n", quantity, stock.Symbol())
		}
	case errors.Is(err, papertrade.ErrInsufficientFunds):
		fmt.Fprintf(s.out, "❌ Not enough balance to buy %s\n", stock.Symbol())
	case errors.Is(err, papertrade.ErrInsufficientShares):
		fmt.Fprintln(s.out, "❌ Not enough shares to sell.")
	default:
		fmt.Fprintf(s.out, "❌ %v\n", err)
	}
	if err != nil {
		logger.Get().Debugw("trade rejected", "side", side, "symbol", stock.Symbol(), "quantity", quantity, "error", err)
	}
	return true
}

// next returns the next input token, or false at the end of the input.
func (s *Session) next() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// closed reports the end of the input, which is not an error unless reading failed.
func (s *Session) closed() error {
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Get().Infow("input closed, leaving without saving")
	fmt.Fprintln(s.out)
	return nil
}
