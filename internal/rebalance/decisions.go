package rebalance

import "github.com/shopspring/decimal"

// Action is what the engine decided to do about a symbol.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionSkip Action = "skip"
)

// Reason explains a decision. Every branch of the policy produces one —
// including the no-op branches, which the journal records like any other
// outcome instead of leaving them as silent fallthrough.
type Reason string

const (
	// Buys.
	ReasonPositiveSentiment Reason = "positive sentiment"

	// Sells.
	ReasonNegativeSentiment Reason = "negative sentiment"
	ReasonFreeUpCash        Reason = "free up cash to buy newly suggested"
	ReasonFreeUpSlot        Reason = "assets limit: free up space to buy newly suggested"

	// Skips.
	ReasonNotHeld           Reason = "not held"
	ReasonNoActionable      Reason = "no actionable sentiment"
	ReasonConcentrationCap  Reason = "concentration cap reached"
	ReasonPositionLimit     Reason = "position limit reached"
	ReasonInsufficientFunds Reason = "insufficient funds"
)

// Decision is one resolved step of the rebalancing policy. Qty is a whole
// share count for buys and sells, zero for skips.
type Decision struct {
	Symbol string
	Action Action
	Qty    decimal.Decimal
	Reason Reason
}

func skipDecision(symbol string, reason Reason) Decision {
	return Decision{Symbol: symbol, Action: ActionSkip, Qty: decimal.Zero, Reason: reason}
}
