package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/five82/dnsdeck/internal/logging"
)

// DefaultInterval is the refresh period used when none is configured.
const DefaultInterval = 5 * time.Second

// StartPoller runs one refresh immediately and then one per interval until
// ctx is cancelled. Each refresh runs on its own goroutine so a slow cycle
// never delays the next tick. It returns immediately; the returned channel
// closes once the loop and every refresh it started have returned.
func StartPoller(ctx context.Context, r Refresher, interval time.Duration, clk clock.WithTicker, logger *slog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	run := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				logger.Debug("poll refresh failed", slog.String("error", err.Error()))
			}
		}()
	}

	// Created before the goroutine starts so a tick is never missed.
	ticker := clk.NewTicker(interval)
	go func() {
		defer close(done)
		defer wg.Wait()
		defer ticker.Stop()

		run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				run()
			}
		}
	}()
	return done
}
