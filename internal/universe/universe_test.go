package universe

import (
	"os"
	"path/filepath"
	"testing"

	"wsb_trader/internal/models"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "NASDAQ.json")
	content := `[
		{"Symbol": "AAPL", "Name": "Apple Inc."},
		{"Symbol": "NVDA", "Name": "NVIDIA Corporation"},
		{"Symbol": "", "Name": "broken row"}
	]`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	u, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if u.Len() != 2 {
		t.Errorf("Expected 2 symbols, got %d", u.Len())
	}
	if !u.Contains("AAPL") || !u.Contains("NVDA") {
		t.Error("Expected AAPL and NVDA to be members")
	}
	if u.Contains("aapl") {
		t.Error("Matching must be case-sensitive")
	}
	if u.Contains("TSLA") {
		t.Error("TSLA is not in the fixture")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFromAssets(t *testing.T) {
	assets := []models.Asset{
		{Symbol: "SPY", Tradable: true},
		{Symbol: "HALT", Tradable: false},
		{Symbol: "", Tradable: true},
	}
	u := FromAssets(assets)

	if u.Len() != 1 {
		t.Errorf("Expected 1 symbol, got %d", u.Len())
	}
	if !u.Contains("SPY") {
		t.Error("Expected SPY to be a member")
	}
	if u.Contains("HALT") {
		t.Error("Non-tradable assets must be excluded")
	}
}
