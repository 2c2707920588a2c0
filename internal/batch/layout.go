package batch

import (
	"unsafe"

	apperrors "github.com/agbru/fasteint/internal/errors"
)

// region is a byte range [lo, hi) of process memory.
type region struct {
	lo, hi uintptr
}

func span(b []byte, off, n int) region {
	if n == 0 || len(b) == 0 {
		return region{}
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return region{lo: base + uintptr(off), hi: base + uintptr(off+n)}
}

func (r region) overlaps(o region) bool {
	return r.lo < o.hi && o.lo < r.hi
}

// splittable reports whether an elementwise kernel writing dst and reading
// src can be cut into independent chunks: the two regions are either
// disjoint or start at the same address with the same stride.
func splittable(dst, src region) bool {
	return !dst.overlaps(src) || dst.lo == src.lo
}

// checkRegion reports a LayoutError unless count elements of stride bytes
// starting at off fit in b. The bound is divided rather than multiplied so a
// huge count cannot wrap past it.
func checkRegion(name string, b []byte, off, stride, count int) error {
	if off < 0 || count < 0 || off > len(b) || (stride > 0 && count > (len(b)-off)/stride) {
		return apperrors.LayoutError{Region: name, Offset: off, Stride: stride, Count: count, Len: len(b)}
	}
	return nil
}
