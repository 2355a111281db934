// Package metrics declares the Prometheus metrics exported by the media
// server: HTTP request counters and latencies, database query metrics,
// upload pipeline and thumbnail extraction outcomes, reconciliation
// counters, and catalog size gauges.
//
// All metrics are registered with the default registry using promauto.
// To expose them, mount promhttp.Handler() on an HTTP mux:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// The Collector refreshes the catalog gauges on a fixed interval from a
// StatsProvider, so gauge values survive scrapes between requests.
package metrics
