// Package database provides the SQLite metadata catalog for the media
// server.
//
// It stores one row per ingested file: display name, stored filename,
// sanitized original filename, size, optional thumbnail reference, and
// ingestion timestamp. The stored filename carries a UNIQUE constraint.
//
// The database uses WAL mode and includes automatic schema
// initialization plus an additive migration that adds the thumbnail
// column to databases created before thumbnails existed.
package database
