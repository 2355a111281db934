package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-server/internal/database"
	"media-server/internal/handlers"
	"media-server/internal/ingest"
	"media-server/internal/logging"
	"media-server/internal/metrics"
	"media-server/internal/middleware"
	"media-server/internal/reconcile"
	"media-server/internal/startup"
	"media-server/internal/store"
	"media-server/internal/thumbnailer"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	startTime := time.Now()

	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded environment from .env file")
	}

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize database
	dbStart := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, config.DatabasePath)
	cancel()
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Initialize file store and thumbnailer
	st := store.New(config.MediaDir, config.ThumbnailsDir)
	extractor := thumbnailer.New(config.ThumbnailOffsetSeconds, config.ThumbnailTimeout)
	startup.LogThumbnailerInit()

	// Initialize upload pipeline and reconciler
	pipeline := ingest.New(st, db, extractor)
	reconciler := reconcile.New(st, db, extractor)

	// Initialize handlers
	h := handlers.New(db, st, pipeline, reconciler, extractor, config)

	// Initialize metrics
	var collector *metrics.Collector
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metrics.InitializeMetrics()

		collector = metrics.NewCollector(&statsAdapter{db: db, store: st}, 1*time.Minute)
		collector.Start()

		metricsSrv = startMetricsServer(h, config.MetricsPort)
	}

	// Setup router
	router := setupRouter(h, config.StaticDir)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Build middleware chain, outermost first
	var handler http.Handler = router

	compressionConfig := middleware.DefaultCompressionConfig()
	handler = middleware.Compression(compressionConfig)(handler)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	handler = middleware.Recovery()(handler)

	handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(handler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Minute, // uploads can be large
		WriteTimeout: 0,                // streaming responses have no deadline
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, collector)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

// statsAdapter bridges the catalog and file store to the metrics collector.
type statsAdapter struct {
	db    *database.Database
	store *store.Store
}

func (a *statsAdapter) GetStats() metrics.Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := a.db.CountAll(ctx)
	if err != nil {
		logging.Warn("stats: failed to count catalog items: %v", err)
	}
	withThumb, err := a.db.CountWithThumbnail(ctx)
	if err != nil {
		logging.Warn("stats: failed to count thumbnails: %v", err)
	}

	return metrics.Stats{
		CatalogItems:   items,
		WithThumbnail:  withThumb,
		OriginalFiles:  a.store.CountFiles(store.KindOriginal),
		ThumbnailFiles: a.store.CountFiles(store.KindThumbnail),
	}
}

func setupRouter(h *handlers.Handlers, staticDir string) *mux.Router {
	r := mux.NewRouter()

	// Health and version
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Upload and catalog
	r.HandleFunc("/upload", h.Upload).Methods("POST")
	r.HandleFunc("/videos", h.ListVideos).Methods("GET")
	r.HandleFunc("/video/{id:[0-9]+}", h.DeleteVideo).Methods("DELETE")

	// Streaming
	r.HandleFunc("/video/{filename}", h.ServeVideo).Methods("GET")
	r.HandleFunc("/thumb/{filename}", h.ServeThumbnail).Methods("GET")

	// Maintenance
	r.HandleFunc("/cleanup", h.Cleanup).Methods("POST")
	r.HandleFunc("/generate-thumbnails", h.GenerateThumbnails).Methods("POST")

	// Static files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}

// startMetricsServer runs the Prometheus endpoint on its own port so the
// main listener never serves scrape traffic.
func startMetricsServer(h *handlers.Handlers, port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", h.MetricsHandler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if collector != nil {
		startup.LogShutdownStep("Stopping metrics collector")
		collector.Stop()
		startup.LogShutdownStepComplete("Metrics collector stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
