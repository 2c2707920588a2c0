//go:build gmp

package oracle

import "github.com/ncw/gmp"

// GMP runs each batched operation on libgmp through github.com/ncw/gmp.
// Build with -tags gmp; requires cgo and the GMP headers.
type GMP struct{}

// Name identifies the backend in reports.
func (GMP) Name() string { return "gmp" }

func gmpGet(b []byte, n int) *gmp.Int {
	be := make([]byte, n)
	for i := 0; i < n; i++ {
		be[n-1-i] = b[i]
	}
	return new(gmp.Int).SetBytes(be)
}

// gmpPut stores x mod 2^(8n) little-endian into b.
func gmpPut(b []byte, x *gmp.Int, n int) {
	x = new(gmp.Int).Mod(x, new(gmp.Int).Lsh(gmp.NewInt(1), uint(8*n)))
	be := x.Bytes()
	clear(b[:n])
	for i := 0; i < len(be); i++ {
		b[i] = be[len(be)-1-i]
	}
}

// WideningMul256 stores lo then hi of a[i]*b[i] at buf[dstOff+64i:].
func (GMP) WideningMul256(buf []byte, dstOff, aOff, bOff, count int) {
	p := new(gmp.Int)
	for i := 0; i < count; i++ {
		p.Mul(gmpGet(buf[aOff+32*i:], 32), gmpGet(buf[bOff+32*i:], 32))
		gmpPut(buf[dstOff+64*i:], p, 64)
	}
}

// WrappingMul256 stores a[i]*b[i] mod 2^256 into dst[i].
func (GMP) WrappingMul256(a, b, dst []byte, count int) {
	p := new(gmp.Int)
	for i := 0; i < count; i++ {
		p.Mul(gmpGet(a[32*i:], 32), gmpGet(b[32*i:], 32))
		gmpPut(dst[32*i:], p, 32)
	}
}

// WrappingAdd512 stores a[i]+b[i] mod 2^512 into dst[i].
func (GMP) WrappingAdd512(a, b, dst []byte, count int) {
	s := new(gmp.Int)
	for i := 0; i < count; i++ {
		s.Add(gmpGet(a[64*i:], 64), gmpGet(b[64*i:], 64))
		gmpPut(dst[64*i:], s, 64)
	}
}

// WrappingSub256 stores a[i]-b[i] mod 2^256 into dst[i].
func (GMP) WrappingSub256(a, b, dst []byte, count int) {
	d := new(gmp.Int)
	for i := 0; i < count; i++ {
		d.Sub(gmpGet(a[32*i:], 32), gmpGet(b[32*i:], 32))
		gmpPut(dst[32*i:], d, 32)
	}
}

// BorrowSub256 reports whether a < b.
func (GMP) BorrowSub256(a, b []byte) bool {
	return gmpGet(a, 32).Cmp(gmpGet(b, 32)) < 0
}

// NarrowingRightShift512 stores the low half of src[i] >> (shift mod 512).
func (GMP) NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	s := uint(shift & 511)
	r := new(gmp.Int)
	for i := 0; i < count; i++ {
		r.Rsh(gmpGet(src[64*i:], 64), s)
		gmpPut(dst[32*i:], r, 32)
	}
}
