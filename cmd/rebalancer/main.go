package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wsb_trader/internal/ai"
	"wsb_trader/internal/audit"
	"wsb_trader/internal/config"
	"wsb_trader/internal/logger"
	"wsb_trader/internal/market/alpaca"
	platformhttp "wsb_trader/internal/platform/http"
	"wsb_trader/internal/rebalance"
	"wsb_trader/internal/reddit"
	"wsb_trader/internal/universe"
)

const LogFile = "rebalancer.log"
const VersionFile = "version.latest"

// cycleTimeout bounds one full rebalancing run, reddit and OpenAI included.
const cycleTimeout = 10 * time.Minute

// main is the entry point of the application.
func main() {
	// 1. Initialization
	cfg := config.Load()
	cfg.Version = readVersion()

	logger.Setup(LogFile, cfg.MaxLogSizeMB, cfg.MaxLogBackups)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Setup Dependencies
	provider := alpaca.NewProvider()

	uni, err := universe.Load(cfg.UniverseFile)
	if err != nil {
		// No listing file on disk: fall back to the broker's own active
		// tradable US equities.
		log.Printf("Universe file unavailable (%v), falling back to broker assets", err)
		assets, assetErr := provider.ListAssets()
		if assetErr != nil {
			log.Fatalf("CRITICAL: No tradeable universe available: %v", assetErr)
		}
		uni = universe.FromAssets(assets)
	}
	log.Printf("Tradeable universe loaded: %d symbols", uni.Len())

	httpClient := platformhttp.NewClient(platformhttp.ClientOptions{
		Timeout:         60 * time.Second,
		RequestsPerSec:  1,
		MaxRetryTimeout: 2 * time.Minute,
	})
	source := ai.NewClient(cfg.OpenAIModel, httpClient, reddit.NewFetcher(httpClient, cfg.RedditUser))

	sink := audit.NewFileSink(cfg.AuditLogFile)
	engine := rebalance.New(cfg, provider, source, uni, sink)

	// 3. Setup Signal Handling (Graceful Shutdown)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down: system signal received.")
		cancel()
	}()

	log.Printf("WSB Rebalancer %s Initialized", cfg.Version)
	log.Printf("Schedule: weekdays %02d:%02d %s", cfg.ScheduleHour, cfg.ScheduleMinute, config.BerlinLoc)

	if cfg.RunOnStart {
		runCycle(ctx, engine, sink)
	}

	// 4. Main Loop
	// One timer per fire: compute the next weekday slot, sleep until it,
	// run, repeat.
	for {
		next := nextRun(time.Now().In(config.BerlinLoc), cfg.ScheduleHour, cfg.ScheduleMinute)
		log.Printf("Next rebalancing scheduled for: %s", next.Format("2006-01-02 15:04:05 MST"))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Main loop stopping...")
			return
		case <-timer.C:
			runCycle(ctx, engine, sink)
		}
	}
}

func runCycle(ctx context.Context, engine *rebalance.Engine, sink audit.Sink) {
	cycleCtx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	if err := engine.RunCycle(cycleCtx); err != nil {
		// Top-level cycle boundary: record and resume on the next trigger.
		log.Printf("ERROR: Rebalancing cycle failed: %v", err)
		sink.Recordf("Cycle aborted: %v.", err)
	}
}

// nextRun returns the next weekday occurrence of hh:mm after now, in now's
// location. Weekend slots roll forward to Monday.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func readVersion() string {
	version, err := os.ReadFile(VersionFile)
	if err != nil {
		return "v0.0.0-dev"
	}
	return string(version)
}
