// Package ingest orchestrates the upload-to-metadata pipeline: filename
// normalization, writing the original to the media store, best-effort
// thumbnail extraction, and the catalog insert, with defined
// partial-failure behavior. It also implements the inverse operation,
// deleting a media item's files and catalog row.
package ingest
