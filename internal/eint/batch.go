package eint

// ─────────────────────────────────────────────────────────────────────────────
// Batched kernels over separate slices
// ─────────────────────────────────────────────────────────────────────────────

// WideningMul256 computes, for i in [0, count), the exact 512-bit product of
// the 256-bit operands at buf[aOff+32i:] and buf[bOff+32i:] and stores it at
// buf[dstOff+64i:], low half first. The destination region must not overlap
// either operand region.
func WideningMul256(buf []byte, dstOff, aOff, bOff, count int) {
	if count <= 0 {
		return
	}
	_ = buf[RegionEnd(dstOff, Size512, count)-1]
	_ = buf[RegionEnd(aOff, Size256, count)-1]
	_ = buf[RegionEnd(bOff, Size256, count)-1]

	var x, y Uint256
	var z Uint512
	for i := 0; i < count; i++ {
		x.SetBytes(buf[aOff+i*Size256:])
		y.SetBytes(buf[bOff+i*Size256:])
		MulFull(&z, &x, &y)
		z.PutBytes(buf[dstOff+i*Size512:])
	}
}

// WrappingMul256 stores a[i]*b[i] mod 2^256 into dst[i]. dst may be a or b.
func WrappingMul256(a, b, dst []byte, count int) {
	if count <= 0 {
		return
	}
	n := count * Size256
	a, b, dst = a[:n:n], b[:n:n], dst[:n:n]

	var x, y, z Uint256
	for off := 0; off < n; off += Size256 {
		x.SetBytes(a[off:])
		y.SetBytes(b[off:])
		MulLow(&z, &x, &y)
		z.PutBytes(dst[off:])
	}
}

// WrappingAdd512 stores a[i]+b[i] mod 2^512 into dst[i]. dst may be a or b.
func WrappingAdd512(a, b, dst []byte, count int) {
	if count <= 0 {
		return
	}
	n := count * Size512
	a, b, dst = a[:n:n], b[:n:n], dst[:n:n]

	var x, y Uint512
	for off := 0; off < n; off += Size512 {
		x.SetBytes(a[off:])
		y.SetBytes(b[off:])
		Add512(&x, &x, &y)
		x.PutBytes(dst[off:])
	}
}

// WrappingSub256 stores a[i]-b[i] mod 2^256 into dst[i]. dst may be a or b.
func WrappingSub256(a, b, dst []byte, count int) {
	if count <= 0 {
		return
	}
	n := count * Size256
	a, b, dst = a[:n:n], b[:n:n], dst[:n:n]

	var x, y Uint256
	for off := 0; off < n; off += Size256 {
		x.SetBytes(a[off:])
		y.SetBytes(b[off:])
		Sub256(&x, &x, &y)
		x.PutBytes(dst[off:])
	}
}

// BorrowSub256 reports whether the 256-bit value in a is less than the one
// in b. Nothing is written.
func BorrowSub256(a, b []byte) bool {
	var x, y Uint256
	x.SetBytes(a)
	y.SetBytes(b)
	return Borrow256(&x, &y)
}

// NarrowingRightShift512 stores the low 256 bits of src[i] >> (shift mod 512)
// into dst[i], reading 64-byte elements and writing 32-byte elements. dst may
// start at the same address as src: element i is loaded before its result is
// written, and that result only covers bytes of elements already consumed.
func NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	if count <= 0 {
		return
	}
	src = src[: count*Size512 : count*Size512]
	dst = dst[: count*Size256 : count*Size256]

	var x Uint512
	var z Uint256
	for i := 0; i < count; i++ {
		x.SetBytes(src[i*Size512:])
		ShrNarrow(&z, &x, shift)
		z.PutBytes(dst[i*Size256:])
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Offset forms over one shared buffer
// ─────────────────────────────────────────────────────────────────────────────

// WrappingMul256At is WrappingMul256 with all three regions inside buf.
func WrappingMul256At(buf []byte, dstOff, aOff, bOff, count int) {
	if count <= 0 {
		return
	}
	WrappingMul256(buf[aOff:], buf[bOff:], buf[dstOff:], count)
}

// WrappingAdd512At is WrappingAdd512 with all three regions inside buf.
func WrappingAdd512At(buf []byte, dstOff, aOff, bOff, count int) {
	if count <= 0 {
		return
	}
	WrappingAdd512(buf[aOff:], buf[bOff:], buf[dstOff:], count)
}

// WrappingSub256At is WrappingSub256 with all three regions inside buf.
func WrappingSub256At(buf []byte, dstOff, aOff, bOff, count int) {
	if count <= 0 {
		return
	}
	WrappingSub256(buf[aOff:], buf[bOff:], buf[dstOff:], count)
}

// NarrowingRightShift512At is NarrowingRightShift512 with both regions
// inside buf. dstOff == srcOff is the in-place mode.
func NarrowingRightShift512At(buf []byte, dstOff, srcOff int, shift uint32, count int) {
	if count <= 0 {
		return
	}
	NarrowingRightShift512(buf[srcOff:], buf[dstOff:], shift, count)
}
