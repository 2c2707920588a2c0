// Package arena lays out several operand regions inside one contiguous byte
// buffer, the shape the shared-buffer kernels (WideningMul256 and the
// offset forms) operate on.
package arena

import "io"

// Region is a run of Count elements of Stride bytes starting at Off.
type Region struct {
	Off    int
	Stride int
	Count  int
}

// Len returns the byte length of the region.
func (r Region) Len() int { return r.Stride * r.Count }

// End returns the exclusive byte bound of the region.
func (r Region) End() int { return r.Off + r.Len() }

// Bytes returns the region's bytes inside buf.
func (r Region) Bytes(buf []byte) []byte { return buf[r.Off:r.End():r.End()] }

// Elem returns element i of the region inside buf.
func (r Region) Elem(buf []byte, i int) []byte {
	off := r.Off + i*r.Stride
	return buf[off : off+r.Stride : off+r.Stride]
}

// Arena is a bump allocator of regions. Regions are offsets, so they stay
// valid when the backing buffer grows; slices previously taken from Bytes
// do not.
type Arena struct {
	buf    []byte
	offset int
}

// New returns an arena with capacity bytes reserved up front.
func New(capacity int) *Arena {
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Alloc reserves count elements of stride bytes after everything allocated
// so far. The new bytes are zero. Exceeding the reserved capacity grows the
// buffer.
func (a *Arena) Alloc(stride, count int) Region {
	r := Region{Off: a.offset, Stride: stride, Count: count}
	a.grow(r.Len())
	return r
}

// Pad skips n bytes, leaving a gap between the previous region and the next.
func (a *Arena) Pad(n int) {
	a.grow(n)
}

func (a *Arena) grow(n int) {
	if n <= 0 {
		return
	}
	end := a.offset + n
	if end > cap(a.buf) {
		nb := make([]byte, a.offset, max(end, 2*cap(a.buf)))
		copy(nb, a.buf)
		a.buf = nb
	}
	a.buf = a.buf[:end]
	clear(a.buf[a.offset:end])
	a.offset = end
}

// Bytes returns the used portion of the buffer.
func (a *Arena) Bytes() []byte { return a.buf[:a.offset] }

// Fill overwrites every allocated byte from r, typically a seeded RNG.
func (a *Arena) Fill(r io.Reader) error {
	_, err := io.ReadFull(r, a.buf[:a.offset])
	return err
}

// Reset releases every region without freeing the backing buffer.
func (a *Arena) Reset() {
	a.offset = 0
	a.buf = a.buf[:0]
}

// UsedBytes returns the number of bytes allocated so far, padding included.
func (a *Arena) UsedBytes() int { return a.offset }

// CapacityBytes returns the size of the backing buffer.
func (a *Arena) CapacityBytes() int { return cap(a.buf) }
