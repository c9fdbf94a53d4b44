// Package cmd implements the pts CLI application: the interactive trading menu
// and one-shot report subcommands.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/config"
	"github.com/etnz/papertrade/logger"
	"github.com/etnz/papertrade/sqlite"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&tradeCmd{}, "trading")

	c.Register(&marketCmd{}, "reports")
	c.Register(&holdingCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the YAML configuration file")
var portfolioFile = flag.String("portfolio-file", "", "Path to the portfolio file, overrides the configuration. Files ending in .db or .sqlite use SQLite.")

// LoadConfig reads the configuration file, applies the command line overrides
// and initializes the logger at the configured level.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *portfolioFile != "" {
		cfg.PortfolioFile = *portfolioFile
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, err
	}
	logger.Get().Debugw("configuration loaded", "config", *configFile, "portfolio", cfg.PortfolioFile, "currency", cfg.Currency)
	return cfg, nil
}

// OpenStore returns the store for the portfolio file at path, chosen by its extension.
func OpenStore(path string) papertrade.Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.New(path)
	default:
		return papertrade.JSONLFile(path)
	}
}

// DecodePortfolio loads the saved portfolio, or a fresh one with the starting
// cash when nothing was saved yet.
func DecodePortfolio(cfg *config.Config) (*papertrade.Portfolio, error) {
	store := OpenStore(cfg.PortfolioFile)
	p, err := store.Load()
	if errors.Is(err, fs.ErrNotExist) {
		logger.Get().Warnw("no saved portfolio, using the starting cash", "store", store, "cash", cfg.StartingCash())
		return papertrade.NewPortfolio(cfg.StartingCash()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading portfolio from %v: %w", store, err)
	}
	return p, nil
}

// printMarkdown writes md to w, formatted for the terminal unless raw is set.
func printMarkdown(w io.Writer, md string, raw bool) {
	if raw {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	logger.Get().Warnw("cannot format markdown, printing it raw", "error", err)
	fmt.Fprint(w, md)
}
