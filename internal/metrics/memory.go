// Package metrics collects runtime memory readings and exposes kernel
// counters to Prometheus.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Mallocs      uint64 // cumulative heap objects allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryDelta is the change between two snapshots.
type MemoryDelta struct {
	Bytes   uint64
	Objects uint64
	GCs     uint32
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta returns the allocation activity between before and after. The
// cumulative counters never decrease, so the result is never negative.
func Delta(before, after MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Bytes:   after.TotalAlloc - before.TotalAlloc,
		Objects: after.Mallocs - before.Mallocs,
		GCs:     after.NumGC - before.NumGC,
	}
}
