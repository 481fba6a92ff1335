package renderer

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInsufficientMemory is returned when the pixel buffer would not fit in available memory
var ErrInsufficientMemory = errors.New("renderer: insufficient memory")

// Host queries, replaced in tests
var (
	availableMemory = func() (uint64, error) {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return 0, err
		}
		return vm.Available, nil
	}
	logicalCPUs = func() (int, error) {
		return cpu.Counts(true)
	}
)

// checkMemory fails when a width×height buffer exceeds the memory the host reports as
// available. A host that cannot report memory is not an error.
func checkMemory(width, height int, logger core.Logger) error {
	hi, pixels := bits.Mul64(uint64(width), uint64(height))
	if hi != 0 || pixels > math.MaxUint64/bytesPerPixel {
		return fmt.Errorf("%w: %dx%d image is too large to address", ErrInsufficientMemory, width, height)
	}
	required := pixels * bytesPerPixel

	available, err := availableMemory()
	if err != nil {
		logger.Warningf("Skipping memory preflight: %v", err)
		return nil
	}
	logger.Debugf("Memory preflight: need %s, %s available", formatBytes(required), formatBytes(available))

	if required > available {
		return fmt.Errorf("%w: %dx%d image needs %s, only %s available",
			ErrInsufficientMemory, width, height, formatBytes(required), formatBytes(available))
	}
	return nil
}

// resolveWorkers returns requested, or one worker per logical CPU when it is 0
func resolveWorkers(requested int, logger core.Logger) int {
	if requested > 0 {
		return requested
	}
	n, err := logicalCPUs()
	if err != nil || n <= 0 {
		logger.Debugf("CPU count unavailable (%v), using runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return n
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 5; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
