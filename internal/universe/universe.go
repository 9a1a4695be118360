// Package universe holds the set of tradeable symbols that signals are
// filtered against before any order is considered.
package universe

import (
	"encoding/json"
	"fmt"
	"os"

	"wsb_trader/internal/models"
)

// record mirrors one entry of the exchange listing file. The file carries
// many more columns (name, market cap, sector); only Symbol is consulted.
type record struct {
	Symbol string `json:"Symbol"`
}

// Universe is a membership set over ticker symbols.
type Universe struct {
	symbols map[string]struct{}
}

// Load reads a JSON listing file of the form [{"Symbol": "AAPL", ...}, ...]
// and builds the membership set.
func Load(filename string) (*Universe, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse universe file %s: %w", filename, err)
	}

	u := &Universe{symbols: make(map[string]struct{}, len(records))}
	for _, r := range records {
		if r.Symbol != "" {
			u.symbols[r.Symbol] = struct{}{}
		}
	}
	return u, nil
}

// FromAssets builds the set from a broker asset list instead of a file.
func FromAssets(assets []models.Asset) *Universe {
	u := &Universe{symbols: make(map[string]struct{}, len(assets))}
	for _, a := range assets {
		if a.Tradable && a.Symbol != "" {
			u.symbols[a.Symbol] = struct{}{}
		}
	}
	return u
}

// Contains reports whether the symbol is tradeable. Matching is exact and
// case-sensitive, same as the broker's symbology.
func (u *Universe) Contains(symbol string) bool {
	_, ok := u.symbols[symbol]
	return ok
}

// Len returns the number of symbols in the set.
func (u *Universe) Len() int {
	return len(u.symbols)
}
