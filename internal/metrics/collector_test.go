package metrics

import (
	"sync/atomic"
	"testing"
	"time"
)

type fakeStatsProvider struct {
	calls atomic.Int64
	stats Stats
}

func (f *fakeStatsProvider) GetStats() Stats {
	f.calls.Add(1)
	return f.stats
}

func TestCollectorCollectsOnStart(t *testing.T) {
	provider := &fakeStatsProvider{
		stats: Stats{
			CatalogItems:   7,
			WithThumbnail:  3,
			OriginalFiles:  7,
			ThumbnailFiles: 3,
		},
	}

	c := NewCollector(provider, time.Hour)
	c.Start()
	defer c.Stop()

	// The first collection happens immediately; give the goroutine a moment.
	deadline := time.Now().Add(2 * time.Second)
	for provider.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if provider.calls.Load() == 0 {
		t.Fatal("collector never called GetStats")
	}
}

func TestCollectorStopTerminatesLoop(t *testing.T) {
	provider := &fakeStatsProvider{}
	c := NewCollector(provider, 10*time.Millisecond)
	c.Start()

	time.Sleep(50 * time.Millisecond)
	c.Stop()

	after := provider.calls.Load()
	time.Sleep(50 * time.Millisecond)

	if provider.calls.Load() != after {
		t.Error("collector kept running after Stop")
	}
}

func TestInitializeMetricsDoesNotPanic(t *testing.T) {
	InitializeMetrics()
	InitializeMetrics() // idempotent
}
