// Package config loads the settings of the pts tool.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// environment variables (PTS_*), which may come from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultFile          = "pts.yaml"
	DefaultPortfolioFile = "portfolio.jsonl"
	DefaultCash          = "10000"
	DefaultLogLevel      = "warn"
)

// Config holds application configuration.
type Config struct {
	Cash          string        `yaml:"cash"`           // starting balance of a fresh portfolio
	Currency      string        `yaml:"currency"`       // ISO code of cash and prices
	PortfolioFile string        `yaml:"portfolio_file"` // .jsonl, or .db/.sqlite for SQLite
	LogLevel      string        `yaml:"log_level"`
	Market        []StockConfig `yaml:"market"` // replaces the seeded catalog when set
}

// StockConfig lists one stock of the market.
type StockConfig struct {
	Symbol string `yaml:"symbol"`
	Price  string `yaml:"price"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cash:          DefaultCash,
		Currency:      papertrade.DefaultCurrency,
		PortfolioFile: DefaultPortfolioFile,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Get().Debugw("no config file, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
			}
		}
	}

	// Load .env file if present, it never overrides the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Get().Warnw("could not read .env file", "error", err)
	}
	cfg.Cash = getEnv("PTS_CASH", cfg.Cash)
	cfg.Currency = getEnv("PTS_CURRENCY", cfg.Currency)
	cfg.PortfolioFile = getEnv("PTS_PORTFOLIO_FILE", cfg.PortfolioFile)
	cfg.LogLevel = getEnv("PTS_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate performs basic configuration validation.
func (c *Config) Validate() error {
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	cash, err := decimal.NewFromString(c.Cash)
	if err != nil {
		return fmt.Errorf("invalid cash %q: %w", c.Cash, err)
	}
	if cash.IsNegative() {
		return fmt.Errorf("cash cannot be negative: %s", c.Cash)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.PortfolioFile == "" {
		return errors.New("portfolio file cannot be empty")
	}
	seen := make(map[string]bool)
	for i, s := range c.Market {
		symbol := papertrade.NormalizeSymbol(s.Symbol)
		if symbol == "" {
			return fmt.Errorf("market entry #%d has no symbol", i+1)
		}
		if seen[symbol] {
			return fmt.Errorf("market lists %s twice", symbol)
		}
		seen[symbol] = true
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return fmt.Errorf("invalid price %q for %s: %w", s.Price, symbol, err)
		}
		if !price.IsPositive() {
			return fmt.Errorf("price of %s must be positive, got %s", symbol, s.Price)
		}
	}
	return nil
}

// StartingCash returns the balance of a fresh portfolio.
func (c *Config) StartingCash() papertrade.Money {
	return papertrade.M(decimal.RequireFromString(c.Cash), c.Currency)
}

// Catalog returns the configured market, or the seeded one when none is configured.
func (c *Config) Catalog() *papertrade.Catalog {
	if len(c.Market) == 0 {
		return papertrade.DefaultCatalog(c.Currency)
	}
	stocks := make([]papertrade.Stock, 0, len(c.Market))
	for _, s := range c.Market {
		stocks = append(stocks, papertrade.NewStock(s.Symbol, papertrade.M(decimal.RequireFromString(s.Price), c.Currency)))
	}
	return papertrade.NewCatalog(stocks...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
