package oracle

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/fasteint/internal/errors"
)

// Width is the bit width of a reference value.
type Width uint

// Supported widths.
const (
	W256 Width = 256
	W512 Width = 512
)

// Bytes returns the encoded size of a value of width w.
func (w Width) Bytes() int { return int(w) / 8 }

func (w Width) modulus() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(w))
}

// Uint is an immutable w-bit unsigned integer. The zero value is not usable;
// construct with Get, GetUnchecked, FromUint64 or FromBig.
type Uint struct {
	w Width
	v *big.Int
}

// Get decodes a little-endian value whose encoding must be exactly w/8 bytes.
func Get(w Width, b []byte) (Uint, error) {
	if len(b) != w.Bytes() {
		return Uint{}, apperrors.ValidationError{
			Field:   fmt.Sprintf("u%d", w),
			Message: fmt.Sprintf("expected %d bytes, got %d", w.Bytes(), len(b)),
		}
	}
	return GetUnchecked(w, b), nil
}

// GetUnchecked decodes the first w/8 bytes of b as a little-endian value.
func GetUnchecked(w Width, b []byte) Uint {
	n := w.Bytes()
	be := make([]byte, n)
	for i := 0; i < n; i++ {
		be[n-1-i] = b[i]
	}
	return Uint{w: w, v: new(big.Int).SetBytes(be)}
}

// FromUint64 returns x as a w-bit value.
func FromUint64(w Width, x uint64) Uint {
	return Uint{w: w, v: new(big.Int).SetUint64(x)}
}

// FromBig returns x mod 2^w. Negative inputs wrap.
func FromBig(w Width, x *big.Int) Uint {
	return Uint{w: w, v: new(big.Int).Mod(x, w.modulus())}
}

// Width returns the bit width of u.
func (u Uint) Width() Width { return u.w }

// Big returns a copy of the value.
func (u Uint) Big() *big.Int { return new(big.Int).Set(u.v) }

// Put stores u little-endian into the first w/8 bytes of b.
func (u Uint) Put(b []byte) {
	n := u.w.Bytes()
	be := u.v.FillBytes(make([]byte, n))
	for i := 0; i < n; i++ {
		b[i] = be[n-1-i]
	}
}

// PutLo stores the low half of u, w/16 bytes, into b.
func (u Uint) PutLo(b []byte) {
	u.Truncate(u.w / 2).Put(b)
}

// Truncate returns u mod 2^w as a w-bit value.
func (u Uint) Truncate(w Width) Uint { return FromBig(w, u.v) }

// Extend returns u zero-extended to width w.
func (u Uint) Extend(w Width) Uint {
	if w < u.w {
		return u.Truncate(w)
	}
	return Uint{w: w, v: new(big.Int).Set(u.v)}
}

func (u Uint) check(v Uint) {
	if u.w != v.w {
		panic(fmt.Sprintf("oracle: width mismatch u%d vs u%d", u.w, v.w))
	}
}

// WrappingAdd returns u+v mod 2^w.
func (u Uint) WrappingAdd(v Uint) Uint {
	u.check(v)
	return FromBig(u.w, new(big.Int).Add(u.v, v.v))
}

// WrappingSub returns u-v mod 2^w.
func (u Uint) WrappingSub(v Uint) Uint {
	u.check(v)
	return FromBig(u.w, new(big.Int).Sub(u.v, v.v))
}

// WrappingMul returns u*v mod 2^w.
func (u Uint) WrappingMul(v Uint) Uint {
	u.check(v)
	return FromBig(u.w, new(big.Int).Mul(u.v, v.v))
}

// WideningMul returns the full product of u and v split into its low and
// high w-bit halves.
func (u Uint) WideningMul(v Uint) (lo, hi Uint) {
	u.check(v)
	p := new(big.Int).Mul(u.v, v.v)
	lo = FromBig(u.w, p)
	hi = Uint{w: u.w, v: p.Rsh(p, uint(u.w))}
	return lo, hi
}

// OverflowingSub returns u-v mod 2^w and whether the subtraction borrowed.
func (u Uint) OverflowingSub(v Uint) (Uint, bool) {
	return u.WrappingSub(v), u.v.Cmp(v.v) < 0
}

// WrappingShr returns u >> (n mod w).
func (u Uint) WrappingShr(n uint32) Uint {
	s := uint(n) % uint(u.w)
	return Uint{w: u.w, v: new(big.Int).Rsh(u.v, s)}
}

// Cmp compares u and v as unsigned integers.
func (u Uint) Cmp(v Uint) int { return u.v.Cmp(v.v) }

// Equal reports whether u and v have the same width and value.
func (u Uint) Equal(v Uint) bool { return u.w == v.w && u.v.Cmp(v.v) == 0 }

// String formats u as 0x-prefixed hex.
func (u Uint) String() string { return fmt.Sprintf("%#x", u.v) }
