// Package handlers provides the HTTP request handlers for the media
// server API.
//
// It includes handlers for:
//   - Media upload and deletion
//   - Catalog listing with derived URLs
//   - Streaming originals and thumbnails
//   - Orphan cleanup and thumbnail backfill
//   - Health checks, version info, and Prometheus metrics
package handlers
