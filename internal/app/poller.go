package app

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
	pollTimeout         = 10 * time.Second
)

// StartPoller refreshes the overview in a background goroutine until ctx is
// cancelled. Consecutive failures back off exponentially up to maxBackoff.
// It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, fetcher building.OverviewFetcher, interval time.Duration, log logr.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, fetcher, log)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, fetcher building.OverviewFetcher, log logr.Logger) {
	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	ov, err := fetcher.FetchOverview(pollCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Info("overview poll failed", "error", err.Error())
	}
	store.Update(ov, err)
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
