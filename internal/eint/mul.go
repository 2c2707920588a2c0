package eint

import "math/bits"

// madd returns the 128-bit value x*y + z + c as (hi, lo).
// The sum cannot overflow: (2^64-1)^2 + 2*(2^64-1) = 2^128-1.
func madd(x, y, z, c uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(x, y)
	lo, carry = bits.Add64(lo, z, 0)
	hi += carry
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	return hi, lo
}

// MulFull sets z to the exact 512-bit product x*y.
func MulFull(z *Uint512, x, y *Uint256) {
	var r Uint512
	for i := 0; i < 4; i++ {
		var c uint64
		for j := 0; j < 4; j++ {
			c, r[i+j] = madd(x[i], y[j], r[i+j], c)
		}
		r[i+4] = c
	}
	*z = r
}

// MulLow sets z to x*y mod 2^256.
//
// Only limb products landing in the low four limbs are formed. Products
// whose position is exactly limb 3 contribute their low 64 bits plus the
// incoming carry; anything above limb 3 is discarded. z may alias x or y.
func MulLow(z, x, y *Uint256) {
	var r Uint256
	for i := 0; i < 4; i++ {
		var c uint64
		for j := 0; i+j < 3; j++ {
			c, r[i+j] = madd(x[i], y[j], r[i+j], c)
		}
		r[3] += x[i]*y[3-i] + c
	}
	*z = r
}
