package oracle

import "math/bits"

const (
	wordBits  = bits.UintSize
	wordBytes = wordBits / 8
	n256      = 256 / wordBits
	n512      = 512 / wordBits
)

func loadWords(z []Word, b []byte) {
	for i := range z {
		var w Word
		for k := wordBytes - 1; k >= 0; k-- {
			w = w<<8 | Word(b[i*wordBytes+k])
		}
		z[i] = w
	}
}

func storeWords(b []byte, x []Word) {
	for i, w := range x {
		for k := 0; k < wordBytes; k++ {
			b[i*wordBytes+k] = byte(w)
			w >>= 8
		}
	}
}

// Words runs each batched operation on math/big's vector routines. It shares
// nothing with Uint beyond the byte order, giving a second reference whose
// failure modes differ from both big.Int and the fast limb code.
type Words struct{}

// Name identifies the backend in reports.
func (Words) Name() string { return "words" }

func mulWords(z, x, y []Word) {
	clear(z)
	for i, yi := range y {
		z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, yi)
	}
}

// WideningMul256 stores the full product of a[i] and b[i] at buf[dstOff+64i:].
func (Words) WideningMul256(buf []byte, dstOff, aOff, bOff, count int) {
	x, y, z := make([]Word, n256), make([]Word, n256), make([]Word, n512)
	for i := 0; i < count; i++ {
		loadWords(x, buf[aOff+32*i:])
		loadWords(y, buf[bOff+32*i:])
		mulWords(z, x, y)
		storeWords(buf[dstOff+64*i:], z)
	}
}

// WrappingMul256 stores a[i]*b[i] mod 2^256 into dst[i].
func (Words) WrappingMul256(a, b, dst []byte, count int) {
	x, y, z := make([]Word, n256), make([]Word, n256), make([]Word, n512)
	for i := 0; i < count; i++ {
		loadWords(x, a[32*i:])
		loadWords(y, b[32*i:])
		mulWords(z, x, y)
		storeWords(dst[32*i:], z[:n256])
	}
}

// WrappingAdd512 stores a[i]+b[i] mod 2^512 into dst[i].
func (Words) WrappingAdd512(a, b, dst []byte, count int) {
	x, y := make([]Word, n512), make([]Word, n512)
	for i := 0; i < count; i++ {
		loadWords(x, a[64*i:])
		loadWords(y, b[64*i:])
		addVV(x, x, y)
		storeWords(dst[64*i:], x)
	}
}

// WrappingSub256 stores a[i]-b[i] mod 2^256 into dst[i].
func (Words) WrappingSub256(a, b, dst []byte, count int) {
	x, y := make([]Word, n256), make([]Word, n256)
	for i := 0; i < count; i++ {
		loadWords(x, a[32*i:])
		loadWords(y, b[32*i:])
		subVV(x, x, y)
		storeWords(dst[32*i:], x)
	}
}

// BorrowSub256 reports whether a < b.
func (Words) BorrowSub256(a, b []byte) bool {
	x, y := make([]Word, n256), make([]Word, n256)
	loadWords(x, a)
	loadWords(y, b)
	return subVV(x, x, y) != 0
}

// NarrowingRightShift512 stores the low half of src[i] >> (shift mod 512).
func (Words) NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	s := uint(shift & 511)
	limb, bit := int(s/wordBits), s%wordBits

	// Window of the source plus zero words so limb+n256 stays in range.
	w := make([]Word, n512+n256+1)
	t := make([]Word, n256+1)
	for i := 0; i < count; i++ {
		loadWords(w[:n512], src[64*i:])
		if bit == 0 {
			copy(t[1:], w[limb:limb+n256])
		} else {
			// Shifting the window left by W-bit lines each result word up
			// one slot: t[k+1] = w[limb+k]>>bit | w[limb+k+1]<<(W-bit).
			shlVU(t, w[limb:limb+n256+1], wordBits-bit)
		}
		storeWords(dst[32*i:], t[1:])
	}
}
