package signal

import (
	"reflect"
	"testing"

	"wsb_trader/internal/models"
)

const sampleReport = `Based on the comments and the number of people agreeing with each comment, here are the top 5 stocks/indices mentioned:

1. SPY (S&P 500 Index) - Positive sentiment.
2. TSLA (Tesla) - Positive sentiment.
3. NVDA (NVIDIA) - Negative sentiment.
4. LULU (Lululemon) - Mixed sentiment.
5. AMZN (Amazon) - Neutral sentiment.

It's worth noting that the sentiment may vary within each comment.`

func TestParse(t *testing.T) {
	got := Parse(sampleReport)

	want := []models.Signal{
		{Ticker: "SPY", Sentiment: models.SentimentPositive},
		{Ticker: "TSLA", Sentiment: models.SentimentPositive},
		{Ticker: "NVDA", Sentiment: models.SentimentNegative},
		{Ticker: "LULU", Sentiment: models.SentimentMixed},
		{Ticker: "AMZN", Sentiment: models.SentimentNeutral},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse mismatch.\n got: %v\nwant: %v", got, want)
	}
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(sampleReport)
	second := Parse(sampleReport)
	if !reflect.DeepEqual(first, second) {
		t.Error("Re-parsing the same report must yield the same sequence")
	}
}

func TestParse_MalformedLinesDropped(t *testing.T) {
	report := "hello world\nAAPL without the pattern\n\nVFS (unknown stock) - Strongly Bullish sentiment."
	got := Parse(report)

	// The last line matches the pattern but carries an unrecognized
	// sentiment phrase, which maps to Other.
	if len(got) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(got))
	}
	if got[0].Ticker != "VFS" || got[0].Sentiment != models.SentimentOther {
		t.Errorf("Unexpected signal: %v", got[0])
	}
}

func TestParse_EmptyReport(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("Expected no signals from empty report, got %v", got)
	}
}

// setUniverse is a test double for the membership check.
type setUniverse map[string]bool

func (s setUniverse) Contains(symbol string) bool { return s[symbol] }

func TestFilter(t *testing.T) {
	signals := []models.Signal{
		{Ticker: "SPY", Sentiment: models.SentimentPositive},
		{Ticker: "FAKE", Sentiment: models.SentimentPositive},
		{Ticker: "NVDA", Sentiment: models.SentimentNegative},
		{Ticker: "ALSOFAKE", Sentiment: models.SentimentNegative},
		{Ticker: "TSLA", Sentiment: models.SentimentPositive},
	}
	u := setUniverse{"SPY": true, "NVDA": true, "TSLA": true}

	got := Filter(signals, u)

	want := []models.Signal{
		{Ticker: "SPY", Sentiment: models.SentimentPositive},
		{Ticker: "NVDA", Sentiment: models.SentimentNegative},
		{Ticker: "TSLA", Sentiment: models.SentimentPositive},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter mismatch.\n got: %v\nwant: %v", got, want)
	}
}

func TestFilter_AdjacentRemovals(t *testing.T) {
	// Two non-members in a row is the case in-place index removal gets
	// wrong (it skips the element after each deletion).
	signals := []models.Signal{
		{Ticker: "BAD1", Sentiment: models.SentimentPositive},
		{Ticker: "BAD2", Sentiment: models.SentimentPositive},
		{Ticker: "SPY", Sentiment: models.SentimentPositive},
	}
	u := setUniverse{"SPY": true}

	got := Filter(signals, u)
	if len(got) != 1 || got[0].Ticker != "SPY" {
		t.Errorf("Expected only SPY to survive, got %v", got)
	}
}
