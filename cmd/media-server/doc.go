// Package main provides the entry point for the Media Server application.
//
// Media Server is a self-hosted web application for uploading, cataloging,
// and streaming video and audio files. Uploaded files are persisted to disk,
// video thumbnails are extracted with FFmpeg, and metadata is kept in a
// SQLite catalog.
//
// # Application Lifecycle
//
// The application follows a structured initialization sequence:
//
//  1. Configuration Loading: Reads environment variables and validates directories
//  2. Database Initialization: Opens the SQLite catalog and applies schema migrations
//  3. Component Initialization:
//     - File Store: Manages the media and thumbnail directories
//     - Thumbnailer: Probes FFmpeg and extracts video thumbnails
//     - Ingest Pipeline: Validates, names, persists, and catalogs uploads
//     - Reconciler: Removes orphaned artifacts and backfills thumbnails
//     - Metrics Collector: Gathers Prometheus metrics (if enabled)
//  4. HTTP Server Setup: Configures routes, middleware, and starts the server
//  5. Graceful Shutdown: Handles SIGINT/SIGTERM, stops all components cleanly
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - POST /upload: multipart media upload
//     - GET /videos: catalog listing with derived URLs
//     - GET /video/{filename}: stream a stored original
//     - GET /thumb/{filename}: serve a thumbnail
//     - DELETE /video/{id}: remove an item and its files
//     - POST /cleanup: orphan reconciliation
//     - POST /generate-thumbnails: thumbnail backfill
//     - GET /health, GET /version: operational endpoints
//     - Static file serving for the web UI
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// # Environment Variables
//
// Configuration is primarily through environment variables:
//
//   - MEDIA_DIR: Directory for uploaded originals (default: ./upload)
//   - THUMBNAILS_DIR: Directory for extracted thumbnails (default: ./thumbnails)
//   - DATABASE_PATH: Path to the SQLite catalog (default: ./videos.db)
//   - STATIC_DIR: Directory with the web UI assets (default: ./static)
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - MAX_UPLOAD_MB: Upload size limit in megabytes (default: 500)
//   - THUMBNAIL_OFFSET_SECONDS: Video timestamp for thumbnails (default: 10)
//   - THUMBNAIL_TIMEOUT: FFmpeg execution timeout (default: 30s)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//
// A .env file in the working directory is loaded if present.
//
// # Graceful Shutdown
//
// The application handles SIGINT and SIGTERM signals gracefully:
//
//  1. Stop the metrics collector
//  2. Shutdown the metrics server (if running)
//  3. Shutdown the main HTTP server (30s timeout)
//  4. Close database connections
//
// # Build Requirements
//
// The application requires CGO for SQLite, and FFmpeg must be present on
// PATH at runtime for thumbnail extraction. Uploads still succeed without
// FFmpeg; thumbnails are simply skipped and can be backfilled later.
package main
