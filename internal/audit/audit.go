// Package audit provides the append-only decision journal. Every decision
// point in a rebalancing cycle writes exactly one human-readable line.
package audit

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"wsb_trader/internal/config"
)

// Sink records one audit line per decision point. Implementations must be
// append-only; the engine never reads the journal back.
type Sink interface {
	Record(msg string)
	Recordf(format string, args ...any)
}

// FileSink appends timestamped lines to a text file, creating it on first
// write. Timestamps are Berlin-local to match the trading schedule.
type FileSink struct {
	filename string
	mu       sync.Mutex
}

var _ Sink = (*FileSink)(nil)

// NewFileSink returns a sink appending to the given file.
func NewFileSink(filename string) *FileSink {
	return &FileSink{filename: filename}
}

func (s *FileSink) Record(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("ERROR: Cannot open audit log %s: %v", s.filename, err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s: %s\n", Timestamp(time.Now()), msg)
	if _, err := f.WriteString(line); err != nil {
		log.Printf("ERROR: Cannot write audit log: %v", err)
	}
}

func (s *FileSink) Recordf(format string, args ...any) {
	s.Record(fmt.Sprintf(format, args...))
}

// Timestamp formats a time the way the journal has always been written:
// US-style date, 12-hour clock, Berlin local time.
func Timestamp(t time.Time) string {
	return t.In(config.BerlinLoc).Format("1/2/2006, 3:04:05 PM")
}

// MemorySink collects lines in memory. Test helper.
type MemorySink struct {
	Lines []string
}

var _ Sink = (*MemorySink)(nil)

func (s *MemorySink) Record(msg string) {
	s.Lines = append(s.Lines, msg)
}

func (s *MemorySink) Recordf(format string, args ...any) {
	s.Record(fmt.Sprintf(format, args...))
}
