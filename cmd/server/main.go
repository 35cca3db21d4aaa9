package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockpulse/internal/aggregator"
	"stockpulse/internal/collector"
	"stockpulse/internal/config"
	"stockpulse/internal/pledge"
	"stockpulse/internal/scheduler"
	"stockpulse/internal/server"
	"stockpulse/internal/symbols"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stockpulse starting...")

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

	// Init symbol source
	var src symbols.Source
	if cfg.Symbols.IndexURL != "" {
		src = symbols.NewIndexSource(cfg.Symbols.IndexURL, cfg.Symbols.Fallback)
	} else {
		src = &symbols.StaticSource{Symbols: cfg.Symbols.Fallback}
	}

	// Init fetchers
	fetcher := collector.NewYahooFetcher(cfg.Market.Suffix, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	var pf aggregator.PledgeFetcher
	if cfg.Pledge.Enabled {
		pf = pledge.NewFetcher(cfg.Pledge.BaseURL)
	} else {
		log.Println("[INFO] pledge scraping disabled")
	}

	// Init aggregator
	agg := aggregator.New(src, fetcher, pf,
		cfg.Market.HistoryDays, cfg.Market.RSIWindow,
		time.Duration(cfg.Market.DelayMS)*time.Millisecond)

	// Init scheduler
	sched := scheduler.NewScheduler(agg)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register refresh task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, warming snapshot cache")
		go sched.Refresh()
	}

	// HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.New(sched, cfg.Server.CacheMaxAgeSec).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		log.Printf("[INFO] listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Println("[INFO] stockpulse stopped")
}
