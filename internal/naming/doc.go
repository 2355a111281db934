// Package naming sanitizes client-supplied filenames and derives unique
// on-disk names for stored media and their thumbnails.
package naming
