// Package reconcile repairs drift between the metadata catalog and the
// on-disk media store: catalog rows whose backing file vanished, files
// no catalog row references, and rows missing a thumbnail that can
// still be generated.
//
// Both passes are idempotent and safe to run repeatedly; they are
// triggered explicitly over HTTP, never by a background scheduler.
package reconcile
