package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_server_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_server_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_server_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_server_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_server_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

// Upload pipeline metrics
var (
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_server_uploads_total",
			Help: "Total number of upload attempts by outcome",
		},
		[]string{"status"}, // "success", "rejected", "error"
	)

	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_server_upload_bytes_total",
			Help: "Total number of bytes accepted by the upload pipeline",
		},
	)

	UploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_server_upload_duration_seconds",
			Help:    "End-to-end upload pipeline duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)

// Thumbnail extraction metrics
var (
	ThumbnailExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_server_thumbnail_extractions_total",
			Help: "Total number of thumbnail extraction attempts by outcome",
		},
		[]string{"status"}, // "success", "failed", "timeout", "unavailable"
	)

	ThumbnailExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_server_thumbnail_extraction_duration_seconds",
			Help:    "Duration of ffmpeg thumbnail extraction in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

// Reconciliation metrics
var (
	OrphansRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_server_orphans_removed_total",
			Help: "Total number of orphaned artifacts removed by reconciliation",
		},
		[]string{"kind"}, // "record", "original_file", "thumbnail_file"
	)

	BackfillRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_server_backfill_runs_total",
			Help: "Total number of thumbnail backfill runs",
		},
	)

	BackfillThumbnailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_server_backfill_thumbnails_total",
			Help: "Total number of backfill thumbnail attempts by outcome",
		},
		[]string{"status"}, // "generated", "failed"
	)
)

// Catalog gauges, refreshed periodically by the Collector
var (
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_server_catalog_items",
			Help: "Number of media items in the catalog",
		},
	)

	CatalogItemsWithThumbnail = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_server_catalog_items_with_thumbnail",
			Help: "Number of catalog items that have a thumbnail",
		},
	)

	StoredFiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_server_stored_files",
			Help: "Number of files on disk per store directory",
		},
		[]string{"kind"}, // "original", "thumbnail"
	)
)

// InitializeMetrics pre-populates expected label combinations so every
// metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"success", "rejected", "error"} {
		UploadsTotal.WithLabelValues(status)
	}

	for _, status := range []string{"success", "failed", "timeout", "unavailable"} {
		ThumbnailExtractionsTotal.WithLabelValues(status)
	}

	for _, kind := range []string{"record", "original_file", "thumbnail_file"} {
		OrphansRemovedTotal.WithLabelValues(kind)
	}

	for _, status := range []string{"generated", "failed"} {
		BackfillThumbnailsTotal.WithLabelValues(status)
	}

	for _, kind := range []string{"original", "thumbnail"} {
		StoredFiles.WithLabelValues(kind)
	}

	for _, op := range []string{"initialize_schema", "insert_video", "list_videos",
		"get_video", "delete_video", "set_thumbnail", "count_videos", "count_thumbnails"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
