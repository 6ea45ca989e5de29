package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	base := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, maxBackoff},
		{"many failures capped", 60, maxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	for failures := 0; failures <= 100; failures++ {
		if got := calculateBackoff(failures, 2*time.Second); got > maxBackoff {
			t.Errorf("calculateBackoff(%d) = %v, exceeds maxBackoff %v", failures, got, maxBackoff)
		}
	}
}

type fakeOverview struct {
	calls atomic.Int32
	err   error
}

func (f *fakeOverview) FetchOverview(context.Context) (building.Overview, error) {
	f.calls.Add(1)
	if f.err != nil {
		return building.Overview{}, f.err
	}
	return building.Overview{Residents: 12}, nil
}

func TestRefreshRecordsResult(t *testing.T) {
	var store state.Store
	refresh(context.Background(), &store, &fakeOverview{}, logr.Discard())
	if snap := store.Snapshot(); !snap.HasOverview || snap.Overview.Residents != 12 {
		t.Fatalf("snapshot = %#v, want residents=12", snap)
	}

	boom := errors.New("down")
	refresh(context.Background(), &store, &fakeOverview{err: boom}, logr.Discard())
	snap := store.Snapshot()
	if !errors.Is(snap.LastError, boom) || snap.Overview.Residents != 12 {
		t.Fatalf("snapshot = %#v, want error recorded and data kept", snap)
	}
}

func TestStartPollerRunsImmediatelyAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var store state.Store
	updated := store.Subscribe()
	fetcher := &fakeOverview{}

	StartPoller(ctx, &store, fetcher, time.Hour, logr.Discard())

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not refresh on start")
	}
	cancel()
	if n := fetcher.calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1 with an hour interval", n)
	}
}
