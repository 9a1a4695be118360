package rebalance

import (
	"errors"
	"fmt"

	"wsb_trader/internal/market"
)

// execute submits the order for one decision and journals the outcome.
// Orders are fire-and-forget market day orders; no fill is awaited.
func (e *Engine) execute(d Decision) error {
	switch d.Action {
	case ActionSkip:
		e.audit.Recordf("No action for %s: %s.", d.Symbol, d.Reason)
		return nil

	case ActionBuy:
		if _, err := e.provider.PlaceOrder(d.Symbol, d.Qty, "buy"); err != nil {
			return err
		}
		e.audit.Recordf("Asset purchased: %s (qty %s).", d.Symbol, d.Qty)
		return nil

	case ActionSell:
		// Re-read the live quantity right before selling. The planning view
		// can be stale by now, and selling a stale quantity would either
		// fail or leave a residue.
		live, err := e.provider.GetPosition(d.Symbol)
		if err != nil {
			if errors.Is(err, market.ErrPositionNotFound) {
				e.audit.Recordf("No action for %s: position no longer held.", d.Symbol)
				return nil
			}
			return err
		}
		if _, err := e.provider.PlaceOrder(d.Symbol, live.Qty, "sell"); err != nil {
			return err
		}
		e.audit.Recordf("Asset owned and sold (%s): %s.", d.Reason, d.Symbol)
		return nil

	default:
		return fmt.Errorf("unknown action %q for %s", d.Action, d.Symbol)
	}
}
