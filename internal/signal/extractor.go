// Package signal turns the free-text market report into structured
// (ticker, sentiment) pairs and filters them against the tradeable universe.
package signal

import (
	"regexp"
	"strings"

	"wsb_trader/internal/models"
)

// linePattern matches one recommendation line of the report, e.g.
//
//	1. SPY (S&P 500 Index) - Positive sentiment.
//
// Group 1 is the ticker, group 3 the sentiment phrase between the closing
// parenthesis and "sentiment.". Lines that do not match are dropped silently.
var linePattern = regexp.MustCompile(`([A-Z]+)\s+\(([^)]+)\)\s+-\s+([A-Za-z\s]+)\s+sentiment\.`)

// Parse extracts signals from the raw report text, in line order.
// Re-parsing the same text always yields the same sequence.
func Parse(report string) []models.Signal {
	var signals []models.Signal
	for _, line := range strings.Split(report, "\n") {
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		signals = append(signals, models.Signal{
			Ticker:    m[1],
			Sentiment: parseSentiment(m[3]),
		})
	}
	return signals
}

func parseSentiment(phrase string) models.Sentiment {
	switch strings.ToLower(strings.TrimSpace(phrase)) {
	case "positive":
		return models.SentimentPositive
	case "negative":
		return models.SentimentNegative
	case "neutral":
		return models.SentimentNeutral
	case "mixed":
		return models.SentimentMixed
	default:
		return models.SentimentOther
	}
}

// Tradeable is the membership check Filter needs. *universe.Universe
// satisfies it.
type Tradeable interface {
	Contains(symbol string) bool
}

// Filter removes signals whose ticker is not in the universe, preserving
// relative order. It builds a new slice instead of deleting in place;
// removing elements from a slice while iterating it by index skips the
// element after every removal.
func Filter(signals []models.Signal, u Tradeable) []models.Signal {
	filtered := make([]models.Signal, 0, len(signals))
	for _, s := range signals {
		if u.Contains(s.Ticker) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
