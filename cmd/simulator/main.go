package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SatoshiSim/internal/cart"
	"SatoshiSim/internal/catalog"
	"SatoshiSim/internal/config"
	"SatoshiSim/internal/history"
	"SatoshiSim/internal/live"
	"SatoshiSim/internal/market"
	"SatoshiSim/internal/model"
	"SatoshiSim/internal/prefs"
	"SatoshiSim/internal/recorder"
	"SatoshiSim/internal/scheduler"
	"SatoshiSim/internal/storage"
	"SatoshiSim/internal/valuation"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SatoshiSim starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := live.NewCoinGeckoFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Build the yearly price table from the bundled samples
	samples, err := history.LoadSamples(cfg.DataSource.ChartPath)
	if err != nil {
		log.Fatalf("[FATAL] load historical samples: %v", err)
	}
	table := history.BuildTable(samples)
	log.Printf("[INFO] price table built: %d years (%d–%d)",
		table.Len(), table.EarliestYear(0), lastYear(table))

	mkt := market.NewState(table, model.Quote{
		USD:       cfg.DefaultQuote.USD,
		Change24h: cfg.DefaultQuote.Change24h,
	})

	// Init persistent storage; degrade to in-memory when the dir is unusable
	var store storage.Store
	if fs, err := storage.NewFileStore(cfg.State.Dir); err != nil {
		log.Printf("[WARN] state dir unavailable, state is in-memory this session: %v", err)
		store = storage.NewMemStore()
	} else {
		store = fs
	}

	cat := catalog.New(cfg.Catalog)
	ledger := cart.NewLedger(store, cat)
	pr := prefs.New(store)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	scenario := valuation.Scenario{
		FiatAmount:   cfg.Scenario.FiatAmount,
		ExchangeRate: cfg.Scenario.ExchangeRate,
	}
	sched := scheduler.NewScheduler(ctx, fetcher, mkt, scenario, ledger, cat, pr, rec,
		cfg.Holdings.BTC, cfg.Scenario.DefaultYear)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.SnapshotCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Read user commands from stdin
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if reply := sched.HandleCommand(scanner.Text()); reply != "" {
				fmt.Println(reply)
			}
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go func() {
			sched.RefreshNow()
			sched.SnapshotNow()
		}()
	}

	log.Println("[INFO] SatoshiSim is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SatoshiSim stopped")
}

func lastYear(t *history.Table) int {
	years := t.Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}
