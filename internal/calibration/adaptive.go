// This file generates candidate thresholds from the hardware.

package calibration

import "runtime"

// GenerateParallelThresholds returns the parallel thresholds (minimum
// elements per chunk) worth timing on this machine. Zero, the sequential
// baseline, always comes first.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{0}

	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 2048, 4096, 8192, 16384)
	case numCPU <= 8:
		thresholds = append(thresholds, 1024, 2048, 4096, 8192, 16384, 32768)
	case numCPU <= 16:
		thresholds = append(thresholds, 512, 1024, 2048, 4096, 8192, 16384, 32768)
	default:
		thresholds = append(thresholds, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768)
	}

	return thresholds
}

// GenerateQuickParallelThresholds returns a reduced candidate set.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{0}
	case numCPU <= 4:
		return []int{0, 4096, 8192}
	case numCPU <= 8:
		return []int{0, 2048, 4096, 8192}
	default:
		return []int{0, 1024, 2048, 4096, 8192}
	}
}
