// Package system provides process-level helpers shared by the mask
// generators: worker-count detection and scratch buffer reuse.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Workers returns the number of goroutines to use for per-mask
// parallel work: the logical CPU count reported by the host, falling
// back to runtime.NumCPU when it cannot be determined.
func Workers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
