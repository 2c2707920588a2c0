package eint

import "math/bits"

// Sub256 sets z to x-y mod 2^256. z may alias x or y.
func Sub256(z, x, y *Uint256) {
	var b uint64
	z[0], b = bits.Sub64(x[0], y[0], 0)
	z[1], b = bits.Sub64(x[1], y[1], b)
	z[2], b = bits.Sub64(x[2], y[2], b)
	z[3], _ = bits.Sub64(x[3], y[3], b)
}

// Borrow256 reports whether x < y by running the borrow chain of x-y
// without materializing the difference.
func Borrow256(x, y *Uint256) bool {
	_, b := bits.Sub64(x[0], y[0], 0)
	_, b = bits.Sub64(x[1], y[1], b)
	_, b = bits.Sub64(x[2], y[2], b)
	_, b = bits.Sub64(x[3], y[3], b)
	return b != 0
}
