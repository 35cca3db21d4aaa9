// Package scheduler keeps a cached fetch-cycle snapshot fresh on a cron
// schedule so HTTP handlers never run a multi-minute scrape inline.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"stockpulse/internal/aggregator"
	"stockpulse/internal/model"
)

// Scheduler owns the cron-driven refresh of the latest FetchResult.
type Scheduler struct {
	Cron       *cron.Cron
	Aggregator *aggregator.Aggregator

	mu        sync.RWMutex
	latest    *model.FetchResult
	refreshMu sync.Mutex
}

// NewScheduler creates a Scheduler around the given aggregator.
func NewScheduler(agg *aggregator.Aggregator) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Aggregator: agg,
	}
}

// Register installs the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.Refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// Refresh runs one aggregation cycle and stores the result. Concurrent
// callers serialize.
func (s *Scheduler) Refresh() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.refresh()
}

// refresh must be called with refreshMu held.
func (s *Scheduler) refresh() {
	res := s.Aggregator.RunCycle()
	s.mu.Lock()
	s.latest = res
	s.mu.Unlock()
}

// Latest returns the cached snapshot, or nil when no cycle has completed yet.
func (s *Scheduler) Latest() *model.FetchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Current returns the cached snapshot, running a synchronous cycle first
// when the cache is cold. Concurrent cold-cache callers coalesce onto a
// single run.
func (s *Scheduler) Current() *model.FetchResult {
	if res := s.Latest(); res != nil {
		return res
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.Latest() == nil {
		log.Println("[INFO] snapshot cache cold, running cycle inline")
		s.refresh()
	}
	return s.Latest()
}
