package eint

// ShiftMask reduces a shift amount modulo the 512-bit source width.
const ShiftMask = 511

// ShrNarrow sets z to the low 256 bits of x >> (shift mod 512).
func ShrNarrow(z *Uint256, x *Uint512, shift uint32) {
	s := uint(shift & ShiftMask)
	limb, bit := s>>6, s&63

	// Zero-padded window: limb+4 reaches index 11 when limb is 7.
	var w [12]uint64
	copy(w[:8], x[:])

	// A Go shift by 64 yields 0, so bit == 0 needs no special case.
	z[0] = w[limb]>>bit | w[limb+1]<<(64-bit)
	z[1] = w[limb+1]>>bit | w[limb+2]<<(64-bit)
	z[2] = w[limb+2]>>bit | w[limb+3]<<(64-bit)
	z[3] = w[limb+3]>>bit | w[limb+4]<<(64-bit)
}
