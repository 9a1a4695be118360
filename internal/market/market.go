// Package market defines the brokerage capability the rebalancing engine
// consumes: account snapshots, position lookups, latest trade prices, and
// market-order submission.
package market

import (
	"errors"

	"wsb_trader/internal/models"

	"github.com/shopspring/decimal"
)

// ErrPositionNotFound is returned by GetPosition when the symbol is not
// currently held. Brokers tend to answer that case with a large unstructured
// error payload; providers must normalize it to this sentinel so callers can
// branch on "not held" without string matching.
var ErrPositionNotFound = errors.New("position not found")

// Provider is the interface the engine trades through. Any struct that
// implements these methods satisfies it, which lets us swap the live Alpaca
// client for a spy in tests without changing the engine.
type Provider interface {
	// Snapshot reads. Valid only for the cycle that fetched them.
	GetBalance() (models.Balance, error)
	ListPositions() ([]models.Position, error)
	GetPosition(symbol string) (models.Position, error)
	GetPrice(symbol string) (decimal.Decimal, error)
	GetClock() (*models.Clock, error)
	ListAssets() ([]models.Asset, error)

	// Order submission. Fire-and-forget: no fill confirmation is awaited.
	PlaceOrder(symbol string, qty decimal.Decimal, side string) (*models.Order, error)
}
