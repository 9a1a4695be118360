// Package rebalance implements the daily allocation policy: it converts the
// filtered sentiment signals into buy/sell orders against the brokerage
// account, liquidating the worst performers when cash or position slots run
// out.
package rebalance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"wsb_trader/internal/audit"
	"wsb_trader/internal/config"
	"wsb_trader/internal/market"
	"wsb_trader/internal/models"
	"wsb_trader/internal/signal"

	"github.com/shopspring/decimal"
)

// ReportSource produces the free-text market report for one cycle.
// *ai.Client satisfies it.
type ReportSource interface {
	Report(ctx context.Context) (string, error)
}

// Engine is the rebalancing core. It pulls one snapshot per cycle from the
// provider, plans decisions against a local view, and submits the resulting
// market orders fire-and-forget.
type Engine struct {
	provider market.Provider
	source   ReportSource
	universe signal.Tradeable
	audit    audit.Sink

	maxPositions int
	capPct       decimal.Decimal // per-position ceiling, fraction of investable
	slotPct      decimal.Decimal // buy size, fraction of investable
	reserveFct   decimal.Decimal // fraction of cash counted as investable
}

// New wires the engine. All collaborators come in explicitly so tests can
// substitute fakes.
func New(cfg *config.Config, provider market.Provider, source ReportSource, universe signal.Tradeable, sink audit.Sink) *Engine {
	return &Engine{
		provider:     provider,
		source:       source,
		universe:     universe,
		audit:        sink,
		maxPositions: cfg.MaxPositions,
		capPct:       decimal.NewFromFloat(cfg.PositionCapPct),
		slotPct:      decimal.NewFromFloat(cfg.SlotPct),
		reserveFct:   decimal.NewFromFloat(cfg.CashReserveFct),
	}
}

// RunCycle executes one full rebalancing cycle: report, extraction, filter,
// plan, execution. Signal-level failures are audited and skipped; only
// cycle-level failures (snapshot reads, report generation) abort.
func (e *Engine) RunCycle(ctx context.Context) error {
	e.audit.Record("Execution started successfully.")

	clock, err := e.provider.GetClock()
	if err != nil {
		return fmt.Errorf("market clock: %w", err)
	}
	if !clock.IsOpen {
		e.audit.Record("Market closed, skipping cycle.")
		return nil
	}

	report, err := e.source.Report(ctx)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	signals := signal.Parse(report)
	e.audit.Recordf("Model suggestions: %s.", formatSignals(signals))

	filtered := signal.Filter(signals, e.universe)
	e.audit.Recordf("Filtered tradeable assets: %s.", formatSignals(filtered))

	_, err = e.Rebalance(filtered)
	return err
}

// Rebalance plans and executes the decisions for one signal batch. The
// broker snapshot is read once; everything after works on the local view.
// The returned decisions include the explicit no-ops.
func (e *Engine) Rebalance(signals []models.Signal) ([]Decision, error) {
	positions, err := e.provider.ListPositions()
	if err != nil {
		return nil, fmt.Errorf("position snapshot: %w", err)
	}
	balance, err := e.provider.GetBalance()
	if err != nil {
		return nil, fmt.Errorf("balance snapshot: %w", err)
	}

	view := newView(positions, balance)
	var all []Decision

	for _, sig := range signals {
		decisions, err := e.planSignal(view, sig)
		if err != nil {
			// Per-signal isolation: one bad lookup must not abort the
			// remaining signals.
			log.Printf("ERROR: Signal %s failed: %v", sig.Ticker, err)
			e.audit.Recordf("Error processing %s, signal skipped: %v.", sig.Ticker, err)
			continue
		}
		for _, d := range decisions {
			if err := e.execute(d); err != nil {
				log.Printf("ERROR: Executing %s %s failed: %v", d.Action, d.Symbol, err)
				e.audit.Recordf("Error executing %s for %s: %v.", d.Action, d.Symbol, err)
			}
			all = append(all, d)
		}
	}
	return all, nil
}

// planSignal resolves one signal into decisions. Only Positive and Negative
// act; every other sentiment is an explicit no-op.
func (e *Engine) planSignal(view *portfolioView, sig models.Signal) ([]Decision, error) {
	switch sig.Sentiment {
	case models.SentimentPositive:
		return e.planBuy(view, sig.Ticker)

	case models.SentimentNegative:
		pos, held := view.get(sig.Ticker)
		if !held {
			return []Decision{skipDecision(sig.Ticker, ReasonNotHeld)}, nil
		}
		view.liquidate(pos.Symbol)
		return []Decision{{
			Symbol: pos.Symbol,
			Action: ActionSell,
			Qty:    pos.Qty,
			Reason: ReasonNegativeSentiment,
		}}, nil

	default:
		return []Decision{skipDecision(sig.Ticker, ReasonNoActionable)}, nil
	}
}

// planBuy is the buy/liquidate sub-policy. It is a bounded loop over the
// local view rather than open recursion: every pass either terminates or
// removes one position, so it finishes in at most count+1 iterations. The
// empty-view case is the explicit "insufficient funds" base the policy
// needs to avoid scanning an empty set for a worst performer.
func (e *Engine) planBuy(view *portfolioView, symbol string) ([]Decision, error) {
	price, err := e.provider.GetPrice(symbol)
	if err != nil {
		return nil, fmt.Errorf("price lookup: %w", err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("no usable price for %s", symbol)
	}

	one := decimal.NewFromInt(1)
	var out []Decision

	for {
		investable := view.investable(e.reserveFct)
		pos, held := view.get(symbol)
		ceiling := e.capPct.Mul(investable)

		// Eligibility: room for a new name, or an existing one still below
		// its concentration ceiling. Parenthesized deliberately.
		eligible := (view.count() < e.maxPositions && !held) ||
			(held && pos.MarketValue.LessThan(ceiling))

		if !eligible {
			if !held && view.count() == e.maxPositions {
				// At the position cap with a new suggestion: make space by
				// liquidating the worst performer, then re-evaluate.
				worst, ok := view.worst()
				if !ok {
					return append(out, skipDecision(symbol, ReasonInsufficientFunds)), nil
				}
				out = append(out, Decision{
					Symbol: worst.Symbol,
					Action: ActionSell,
					Qty:    worst.Qty,
					Reason: ReasonFreeUpSlot,
				})
				view.liquidate(worst.Symbol)
				continue
			}
			if !held {
				return append(out, skipDecision(symbol, ReasonPositionLimit)), nil
			}
			return append(out, skipDecision(symbol, ReasonConcentrationCap)), nil
		}

		desired := e.slotPct.Mul(investable).Div(price).Floor()
		available := view.cash.Div(price).Floor()

		if desired.LessThan(one) {
			// One slot buys less than a single share. Whole-share flooring
			// is deliberate risk conservatism, so this is terminal.
			return append(out, skipDecision(symbol, ReasonInsufficientFunds)), nil
		}

		if available.GreaterThanOrEqual(desired) {
			out = append(out, Decision{
				Symbol: symbol,
				Action: ActionBuy,
				Qty:    desired,
				Reason: ReasonPositiveSentiment,
			})
			view.buy(symbol, desired, price)
			return out, nil
		}

		// Not enough cash: liquidate the worst performer and go around.
		worst, ok := view.worst()
		if !ok {
			return append(out, skipDecision(symbol, ReasonInsufficientFunds)), nil
		}
		out = append(out, Decision{
			Symbol: worst.Symbol,
			Action: ActionSell,
			Qty:    worst.Qty,
			Reason: ReasonFreeUpCash,
		})
		view.liquidate(worst.Symbol)
	}
}

func formatSignals(signals []models.Signal) string {
	b, err := json.Marshal(signals)
	if err != nil {
		return fmt.Sprintf("%v", signals)
	}
	return string(b)
}
