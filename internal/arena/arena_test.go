package arena

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/agbru/fasteint/internal/eint"
	"github.com/agbru/fasteint/internal/oracle"
)

func TestAllocWithPadding(t *testing.T) {
	t.Parallel()
	a := New(1024)

	ra := a.Alloc(32, 8)
	a.Pad(16)
	rb := a.Alloc(32, 8)
	a.Pad(16)
	rc := a.Alloc(64, 8)

	if ra.Off != 0 || rb.Off != 32*8+16 || rc.Off != 32*8*2+16*2 {
		t.Errorf("offsets = %d, %d, %d", ra.Off, rb.Off, rc.Off)
	}
	if a.UsedBytes() != rc.End() {
		t.Errorf("UsedBytes = %d, want %d", a.UsedBytes(), rc.End())
	}
	if len(rc.Bytes(a.Bytes())) != 512 || len(rb.Elem(a.Bytes(), 7)) != 32 {
		t.Error("region slicing returned wrong lengths")
	}
}

func TestGrowKeepsContents(t *testing.T) {
	t.Parallel()
	a := New(8)
	r1 := a.Alloc(8, 1)
	copy(r1.Bytes(a.Bytes()), "abcdefgh")

	r2 := a.Alloc(64, 4)
	if a.CapacityBytes() < r2.End() {
		t.Fatalf("capacity %d below %d", a.CapacityBytes(), r2.End())
	}
	if string(r1.Bytes(a.Bytes())) != "abcdefgh" {
		t.Error("contents lost on growth")
	}
	if !bytes.Equal(r2.Bytes(a.Bytes()), make([]byte, 256)) {
		t.Error("new region not zeroed")
	}
}

func TestResetZeroesReusedBytes(t *testing.T) {
	t.Parallel()
	a := New(64)
	r := a.Alloc(32, 2)
	if err := a.Fill(rand.NewChaCha8([32]byte{1})); err != nil {
		t.Fatal(err)
	}
	a.Reset()
	if a.UsedBytes() != 0 {
		t.Error("Reset should clear the offset")
	}
	r = a.Alloc(32, 2)
	if !bytes.Equal(r.Bytes(a.Bytes()), make([]byte, 64)) {
		t.Error("reallocated region should be zero")
	}
}

// TestWideningLayout lays out a, gap, b, gap, dst and checks the kernel
// against the reference through the regions.
func TestWideningLayout(t *testing.T) {
	t.Parallel()
	const count = 8
	a := New(0)
	ra := a.Alloc(eint.Size256, count)
	a.Pad(16)
	rb := a.Alloc(eint.Size256, count)
	a.Pad(16)
	rd := a.Alloc(eint.Size512, count)
	if err := a.Fill(rand.NewChaCha8([32]byte{9})); err != nil {
		t.Fatal(err)
	}

	buf := a.Bytes()
	want := bytes.Clone(buf)
	eint.WideningMul256(buf, rd.Off, ra.Off, rb.Off, count)
	oracle.Big{}.WideningMul256(want, rd.Off, ra.Off, rb.Off, count)
	if !bytes.Equal(buf, want) {
		t.Fatal("widening multiply over arena layout differs from reference")
	}
}
