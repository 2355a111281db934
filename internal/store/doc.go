// Package store manages the two on-disk directories backing the media
// server: uploaded originals and derived thumbnails.
//
// The store is authoritative for byte existence only; the database
// catalog is authoritative for metadata. The reconcile package is the
// sole component that resolves disagreements between the two.
package store
