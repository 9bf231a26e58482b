// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/handlers"
)

// DefaultSweepInterval matches the hourly schedule of the expiration job.
const DefaultSweepInterval = time.Hour

// Sweeper periodically deactivates polls whose deadline has passed. It is
// owned by the process lifecycle: Start returns when the context is
// cancelled, and a tick that fires while a sweep is still running is
// skipped rather than run concurrently.
type Sweeper struct {
	db       *gorm.DB
	interval time.Duration
	log      *slog.Logger

	mu sync.Mutex
}

func NewSweeper(db *gorm.DB, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		db:       db,
		interval: interval,
		log:      slog.Default().With("system", "sweeper"),
	}
}

// Start runs one eager sweep, then sweeps on every tick until ctx is done.
// Sweep failures are logged and retried on the next tick only.
func (s *Sweeper) Start(ctx context.Context) {
	s.log.Info("expiration sweeper started", "interval", s.interval)

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("expiration sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Returns the number of polls deactivated;
// -1 when the run was skipped because another sweep holds the lock.
func (s *Sweeper) RunOnce(ctx context.Context) int64 {
	if !s.mu.TryLock() {
		s.log.Warn("sweep still running, skipping tick")
		return -1
	}
	defer s.mu.Unlock()

	count, err := handlers.SweepExpired(s.db.WithContext(ctx), time.Now())
	if err != nil {
		s.log.Error("expiration sweep failed", "error", err)
		return 0
	}

	if count > 0 {
		s.log.Info("polls deactivated by expiration", "count", count)
	}
	return count
}
