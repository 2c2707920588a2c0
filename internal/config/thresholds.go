package config

import "runtime"

// Threshold resolution chain (highest priority first):
//   1. CLI flag (-threshold)
//   2. Environment variable (EINT_THRESHOLD)
//   3. Cached calibration profile (~/.fasteint_calibration.json)
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills an unset parallel threshold from the CPU
// count. A user-specified threshold is left untouched.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold returns a heuristic minimum number of
// elements per parallel chunk without running benchmarks. Zero disables
// splitting.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 0 // No parallelism
	case numCPU <= 2:
		return 16384 // Goroutine handoff dominates at this size
	case numCPU <= 4:
		return 8192
	case numCPU <= 8:
		return 4096
	case numCPU <= 16:
		return 2048
	default:
		return 1024
	}
}
