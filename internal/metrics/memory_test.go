package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

var sink []byte

func TestMemoryCollector_Delta(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()

	sink = make([]byte, 1024*1024)

	after := mc.Snapshot()
	d := Delta(before, after)
	if d.Bytes < 1024*1024 {
		t.Errorf("Delta.Bytes = %d, want at least 1 MiB", d.Bytes)
	}
	if d.Objects == 0 {
		t.Error("Delta.Objects should count the allocation")
	}
}
