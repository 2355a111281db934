package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns a worker pool size derived from the CPUs actually
// available to the process. GOMAXPROCS reflects container CPU limits
// (Go 1.19+), so the count stays honest under cgroup constraints.
//
// The multiplier adjusts for task characteristics: 1.0 for CPU-bound
// work, higher for work that also waits on I/O. The limit caps the
// count; use 0 for no cap.
//
// Can be overridden with the THUMBNAIL_WORKERS environment variable.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("THUMBNAIL_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)
	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForMixed returns a worker count for mixed CPU/I-O workloads such as
// thumbnail extraction (1.5 workers per CPU).
func ForMixed(limit int) int {
	return Count(1.5, limit)
}
