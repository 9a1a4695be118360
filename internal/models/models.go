package models

import "github.com/shopspring/decimal"

// Sentiment is the classified tone a signal carries for a ticker.
// Only Positive and Negative trigger trading; everything else is a no-op.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentMixed    Sentiment = "Mixed"
	SentimentOther    Sentiment = "Other"
)

// Signal is one (ticker, sentiment) pair extracted from the daily report.
// Signals are immutable and consumed exactly once per rebalancing cycle.
type Signal struct {
	Ticker    string    `json:"ticker"`
	Sentiment Sentiment `json:"sentiment"`
}

// Position is a read-only snapshot of a holding at the broker.
// It is valid only for the duration of one rebalancing cycle.
type Position struct {
	Symbol         string          `json:"symbol"`
	Qty            decimal.Decimal `json:"qty"`
	MarketValue    decimal.Decimal `json:"market_value"`
	UnrealizedPLPC decimal.Decimal `json:"unrealized_plpc"` // fractional, e.g. -0.12 for -12%
}

// Balance is the account-level snapshot the sizing math runs against.
// Same staleness caveat as Position: one read per cycle.
type Balance struct {
	Equity decimal.Decimal `json:"equity"`
	Cash   decimal.Decimal `json:"cash"`
}
