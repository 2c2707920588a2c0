package oracle

// Big runs each batched operation element by element through Uint. It
// mirrors the fast kernels' load-then-store order, so the aliasing modes
// they accept are valid here too.
type Big struct{}

// Name identifies the backend in reports.
func (Big) Name() string { return "big" }

// WideningMul256 stores lo then hi of a[i]*b[i] at buf[dstOff+64i:].
func (Big) WideningMul256(buf []byte, dstOff, aOff, bOff, count int) {
	for i := 0; i < count; i++ {
		a := GetUnchecked(W256, buf[aOff+32*i:])
		b := GetUnchecked(W256, buf[bOff+32*i:])
		lo, hi := a.WideningMul(b)
		lo.Put(buf[dstOff+64*i:])
		hi.Put(buf[dstOff+64*i+32:])
	}
}

// WrappingMul256 stores a[i]*b[i] mod 2^256 into dst[i].
func (Big) WrappingMul256(a, b, dst []byte, count int) {
	for i := 0; i < count; i++ {
		x := GetUnchecked(W256, a[32*i:])
		y := GetUnchecked(W256, b[32*i:])
		x.WrappingMul(y).Put(dst[32*i:])
	}
}

// WrappingAdd512 stores a[i]+b[i] mod 2^512 into dst[i].
func (Big) WrappingAdd512(a, b, dst []byte, count int) {
	for i := 0; i < count; i++ {
		x := GetUnchecked(W512, a[64*i:])
		y := GetUnchecked(W512, b[64*i:])
		x.WrappingAdd(y).Put(dst[64*i:])
	}
}

// WrappingSub256 stores a[i]-b[i] mod 2^256 into dst[i].
func (Big) WrappingSub256(a, b, dst []byte, count int) {
	for i := 0; i < count; i++ {
		x := GetUnchecked(W256, a[32*i:])
		y := GetUnchecked(W256, b[32*i:])
		x.WrappingSub(y).Put(dst[32*i:])
	}
}

// BorrowSub256 reports whether a < b.
func (Big) BorrowSub256(a, b []byte) bool {
	_, borrow := GetUnchecked(W256, a).OverflowingSub(GetUnchecked(W256, b))
	return borrow
}

// NarrowingRightShift512 stores the low half of src[i] >> (shift mod 512).
func (Big) NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	for i := 0; i < count; i++ {
		GetUnchecked(W512, src[64*i:]).WrappingShr(shift).PutLo(dst[32*i:])
	}
}
