package rebalance

import (
	"wsb_trader/internal/models"

	"github.com/shopspring/decimal"
)

// portfolioView is the engine's mutable local picture of the account during
// one cycle. It starts from the broker snapshot and is updated as decisions
// are made: liquidations credit their market value to cash, buys debit it.
// Equity stays fixed — a fill converts between cash and position value
// without changing net worth. The live account is never read again until the
// next cycle, which keeps the plan deterministic.
type portfolioView struct {
	positions []models.Position
	equity    decimal.Decimal
	cash      decimal.Decimal
}

func newView(positions []models.Position, balance models.Balance) *portfolioView {
	// Copy so the caller's snapshot slice stays untouched.
	local := make([]models.Position, len(positions))
	copy(local, positions)
	return &portfolioView{
		positions: local,
		equity:    balance.Equity,
		cash:      balance.Cash,
	}
}

// investable returns the capital base all percentage sizing works from:
// equity plus the deployable fraction of cash.
func (v *portfolioView) investable(reserveFct decimal.Decimal) decimal.Decimal {
	return v.equity.Add(reserveFct.Mul(v.cash))
}

func (v *portfolioView) count() int {
	return len(v.positions)
}

// get finds the position for a symbol. Exact, case-sensitive match.
func (v *portfolioView) get(symbol string) (models.Position, bool) {
	for _, p := range v.positions {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return models.Position{}, false
}

// worst delegates to the selector over the current view.
func (v *portfolioView) worst() (models.Position, bool) {
	return WorstPerformer(v.positions)
}

// liquidate removes the position and credits its market value to cash,
// preserving the order of the remaining positions.
func (v *portfolioView) liquidate(symbol string) {
	for i, p := range v.positions {
		if p.Symbol == symbol {
			v.cash = v.cash.Add(p.MarketValue)
			v.positions = append(v.positions[:i], v.positions[i+1:]...)
			return
		}
	}
}

// buy debits cash and grows (or opens) the position at the given price.
func (v *portfolioView) buy(symbol string, qty, price decimal.Decimal) {
	cost := qty.Mul(price)
	v.cash = v.cash.Sub(cost)

	for i := range v.positions {
		if v.positions[i].Symbol == symbol {
			v.positions[i].Qty = v.positions[i].Qty.Add(qty)
			v.positions[i].MarketValue = v.positions[i].MarketValue.Add(cost)
			return
		}
	}
	v.positions = append(v.positions, models.Position{
		Symbol:      symbol,
		Qty:         qty,
		MarketValue: cost,
	})
}
