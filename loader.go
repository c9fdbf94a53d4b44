package papertrade

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a portfolio between runs.
type Store interface {
	// Load returns the saved portfolio. The error wraps fs.ErrNotExist when
	// nothing was saved yet.
	Load() (*Portfolio, error)
	// Save replaces the saved portfolio.
	Save(p *Portfolio) error
}

// JSONLFile is a Store backed by a single JSONL file.
type JSONLFile string

func (f JSONLFile) Load() (*Portfolio, error) { return LoadPortfolio(string(f)) }
func (f JSONLFile) Save(p *Portfolio) error   { return SavePortfolio(string(f), p) }
func (f JSONLFile) String() string            { return string(f) }

// LoadPortfolio opens and decodes the portfolio file at path.
func LoadPortfolio(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open portfolio file %q: %w", path, err)
	}
	defer f.Close()

	p, err := DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", path, err)
	}
	return p, nil
}

// SavePortfolio writes the portfolio to the file at path, replacing its content.
//
// The file is written in place: a failure half way leaves a truncated file.
func SavePortfolio(path string, p *Portfolio) error {
	// Ensure the directory for the portfolio file exists.
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for portfolio %q: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening portfolio file %q for writing: %w", path, err)
	}
	defer file.Close()

	if err := EncodePortfolio(file, p); err != nil {
		return fmt.Errorf("error writing portfolio file %q: %w", path, err)
	}
	return file.Close()
}
