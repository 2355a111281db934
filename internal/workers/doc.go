// Package workers sizes worker pools for containerized environments.
//
// runtime.NumCPU reports the host's CPU count even when a cgroup limit
// caps the process to fewer cores, so pool sizes derived from it over-
// subscribe the container. This package derives counts from GOMAXPROCS
// instead, which the Go runtime sets from the container CPU limit.
//
// The THUMBNAIL_WORKERS environment variable overrides the calculation,
// which is useful for tuning FFmpeg concurrency on shared hosts.
package workers
