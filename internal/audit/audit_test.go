package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileSink_AppendsTimestampedLines(t *testing.T) {
	file := filepath.Join(t.TempDir(), "execution.log")
	sink := NewFileSink(file)

	sink.Record("Execution started successfully.")
	sink.Recordf("Asset purchased: %s (qty %d).", "SPY", 19)

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], ": Execution started successfully.") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Asset purchased: SPY (qty 19).") {
		t.Errorf("Unexpected second line: %q", lines[1])
	}
}

func TestTimestamp_Format(t *testing.T) {
	// 2024-01-05 13:07:09 UTC is 14:07:09 in Berlin (CET, winter).
	ts := Timestamp(time.Date(2024, 1, 5, 13, 7, 9, 0, time.UTC))
	if ts != "1/5/2024, 2:07:09 PM" {
		t.Errorf("Unexpected timestamp format: %q", ts)
	}
}

func TestMemorySink(t *testing.T) {
	sink := &MemorySink{}
	sink.Recordf("Filtered tradeable assets: %v.", []string{"SPY"})
	if len(sink.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(sink.Lines))
	}
}
