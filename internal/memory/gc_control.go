// Package memory controls the garbage collector around benchmark runs so
// that collection pauses do not land inside timed kernel loops.
package memory

import (
	"fmt"
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior during a benchmark.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the number of bytes a run must touch before auto mode
// pauses the collector.
const GCAutoThreshold uint64 = 1 << 20

// ParseGCMode validates a mode name.
func ParseGCMode(s string) (GCMode, error) {
	switch m := GCMode(s); m {
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
		return m, nil
	default:
		return "", fmt.Errorf("unknown gc mode %q (want auto, aggressive or disabled)", s)
	}
}

// GCController pauses Go's garbage collector for the duration of a run and
// restores the previous settings afterward. A soft memory limit stays in
// place while collection is off.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            zerolog.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// NewGCController creates a controller for a run touching workingSet bytes.
// Auto mode only activates above GCAutoThreshold; "disabled" means the
// controller is disabled, not the collector.
func NewGCController(mode GCMode, workingSet uint64) *GCController {
	gc := &GCController{mode: mode, logger: zerolog.Nop()}
	switch mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = workingSet >= GCAutoThreshold
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will pause the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin collects once, then pauses the collector if the controller is active.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.GC()
	runtime.ReadMemStats(&gc.startStats)
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.startStats.Sys) * 3; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc).
		Msg("gc paused")
}

// End restores the original collector settings.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.endStats)
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("total_alloc_bytes", gc.endStats.TotalAlloc-gc.startStats.TotalAlloc).
		Uint64("mallocs", gc.endStats.Mallocs-gc.startStats.Mallocs).
		Uint32("collections", gc.endStats.NumGC-gc.startStats.NumGC).
		Msg("gc restored")
}
