// Package sqlite stores a portfolio in a single SQLite database file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/papertrade"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cash (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	amount TEXT NOT NULL,
	currency TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS holdings (
	symbol TEXT PRIMARY KEY,
	quantity TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	side TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity TEXT NOT NULL,
	price TEXT NOT NULL,
	currency TEXT NOT NULL,
	executed_at TEXT NOT NULL
);
`

// Store is a papertrade.Store backed by an SQLite database file.
// Amounts are stored as decimal strings to stay exact.
type Store struct {
	path string
}

// New returns a store for the database file at path. Nothing is opened until
// Load or Save is called.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) String() string { return s.path }

var _ papertrade.Store = (*Store)(nil)

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", s.path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", s.path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite %q: %w", s.path, err)
	}
	return db, nil
}

// Load reads the saved portfolio. A missing database file is reported as
// fs.ErrNotExist rather than created.
func (s *Store) Load() (*papertrade.Portfolio, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("could not open portfolio database %q: %w", s.path, err)
	}
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var amount, currency string
	err = db.QueryRow(`SELECT amount, currency FROM cash WHERE id = 1`).Scan(&amount, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio database %q holds no portfolio: %w", s.path, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("query cash: %w", err)
	}
	cash, err := papertrade.ParseMoney(amount, currency)
	if err != nil {
		return nil, fmt.Errorf("parse cash %q: %w", amount, err)
	}

	holdings, err := s.holdings(db)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions(db)
	if err != nil {
		return nil, err
	}
	return papertrade.Restore(cash, holdings, transactions)
}

func (s *Store) holdings(db *sql.DB) (map[string]papertrade.Quantity, error) {
	rows, err := db.Query(`SELECT symbol, quantity FROM holdings ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make(map[string]papertrade.Quantity)
	for rows.Next() {
		var symbol, quantity string
		if err := rows.Scan(&symbol, &quantity); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		q, err := papertrade.ParseQuantity(quantity)
		if err != nil {
			return nil, fmt.Errorf("holding %s: %w", symbol, err)
		}
		holdings[symbol] = q
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return holdings, nil
}

func (s *Store) transactions(db *sql.DB) ([]papertrade.Transaction, error) {
	rows, err := db.Query(`
		SELECT id, side, symbol, quantity, price, currency, executed_at
		FROM transactions ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]papertrade.Transaction, 0)
	for rows.Next() {
		var id, side, symbol, quantity, price, currency, executedAt string
		if err := rows.Scan(&id, &side, &symbol, &quantity, &price, &currency, &executedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx := papertrade.Transaction{ID: id, Side: papertrade.Side(side), Symbol: symbol}
		if tx.Quantity, err = papertrade.ParseQuantity(quantity); err != nil {
			return nil, fmt.Errorf("transaction %s quantity: %w", id, err)
		}
		if tx.Price, err = papertrade.ParseMoney(price, currency); err != nil {
			return nil, fmt.Errorf("transaction %s price: %w", id, err)
		}
		at, err := time.Parse(time.RFC3339Nano, executedAt)
		if err != nil {
			return nil, fmt.Errorf("transaction %s time: %w", id, err)
		}
		tx.Time = at.Local()
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// Save replaces the stored portfolio in a single database transaction.
func (s *Store) Save(p *papertrade.Portfolio) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create directory for portfolio %q: %w", s.path, err)
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"cash", "holdings", "transactions"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	cash := p.Cash()
	if _, err := tx.Exec(`INSERT INTO cash(id, amount, currency) VALUES (1, ?, ?)`,
		cash.Decimal().String(), cash.Currency()); err != nil {
		return fmt.Errorf("insert cash: %w", err)
	}
	for symbol, q := range p.Holdings() {
		if _, err := tx.Exec(`INSERT INTO holdings(symbol, quantity) VALUES (?, ?)`, symbol, q.String()); err != nil {
			return fmt.Errorf("insert holding %s: %w", symbol, err)
		}
	}
	for t := range p.Transactions() {
		if _, err := tx.Exec(`
			INSERT INTO transactions(id, side, symbol, quantity, price, currency, executed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, string(t.Side), t.Symbol, t.Quantity.String(),
			t.Price.Decimal().String(), t.Price.Currency(), t.Time.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
