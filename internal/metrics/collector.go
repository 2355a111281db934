package metrics

import (
	"time"

	"media-server/internal/logging"
)

// StatsProvider supplies the current catalog and store counts.
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the counts exported as gauges.
type Stats struct {
	CatalogItems   int
	WithThumbnail  int
	OriginalFiles  int
	ThumbnailFiles int
}

// Collector periodically refreshes the catalog gauges.
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	stats := c.statsProvider.GetStats()

	CatalogItems.Set(float64(stats.CatalogItems))
	CatalogItemsWithThumbnail.Set(float64(stats.WithThumbnail))
	StoredFiles.WithLabelValues("original").Set(float64(stats.OriginalFiles))
	StoredFiles.WithLabelValues("thumbnail").Set(float64(stats.ThumbnailFiles))

	logging.Debug("Metrics collector: %d items, %d with thumbnails, %d/%d files on disk",
		stats.CatalogItems, stats.WithThumbnail, stats.OriginalFiles, stats.ThumbnailFiles)
}
