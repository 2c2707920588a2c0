package eint

import (
	"bytes"
	"testing"
)

// pad extends or truncates b to n bytes.
func pad(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

// FuzzWideningMul256 compares the widening multiply with the reference on
// arbitrary operands.
func FuzzWideningMul256(f *testing.F) {
	f.Add([]byte{1}, []byte{1})
	f.Add(bytes.Repeat([]byte{0xff}, 32), bytes.Repeat([]byte{0xff}, 32))
	f.Add(bytes.Repeat([]byte{0xff}, 16), []byte{2})

	f.Fuzz(func(t *testing.T, a, b []byte) {
		buf := append(pad(a, 32), pad(b, 32)...)
		buf = append(buf, make([]byte, 64)...)
		want := bytes.Clone(buf)

		WideningMul256(buf, 64, 0, 32, 1)
		ref.WideningMul256(want, 64, 0, 32, 1)
		if !bytes.Equal(buf, want) {
			t.Fatalf("a=%x b=%x: got %x want %x", a, b, buf[64:], want[64:])
		}
	})
}

func FuzzWrappingMul256(f *testing.F) {
	f.Add([]byte{3}, []byte{5})
	f.Add(bytes.Repeat([]byte{0xff}, 32), []byte{2})

	f.Fuzz(func(t *testing.T, a, b []byte) {
		x, y := pad(a, 32), pad(b, 32)
		got, want := make([]byte, 32), make([]byte, 32)
		WrappingMul256(x, y, got, 1)
		ref.WrappingMul256(x, y, want, 1)
		if !bytes.Equal(got, want) {
			t.Fatalf("a=%x b=%x: got %x want %x", x, y, got, want)
		}
	})
}

func FuzzWrappingAdd512(f *testing.F) {
	f.Add([]byte{1}, bytes.Repeat([]byte{0xff}, 64))

	f.Fuzz(func(t *testing.T, a, b []byte) {
		x, y := pad(a, 64), pad(b, 64)
		got, want := make([]byte, 64), make([]byte, 64)
		WrappingAdd512(x, y, got, 1)
		ref.WrappingAdd512(x, y, want, 1)
		if !bytes.Equal(got, want) {
			t.Fatalf("a=%x b=%x: got %x want %x", x, y, got, want)
		}
	})
}

func FuzzWrappingSub256(f *testing.F) {
	f.Add([]byte{0}, []byte{1})

	f.Fuzz(func(t *testing.T, a, b []byte) {
		x, y := pad(a, 32), pad(b, 32)
		got, want := make([]byte, 32), make([]byte, 32)
		WrappingSub256(x, y, got, 1)
		ref.WrappingSub256(x, y, want, 1)
		if !bytes.Equal(got, want) {
			t.Fatalf("a=%x b=%x: got %x want %x", x, y, got, want)
		}
		if BorrowSub256(x, y) != ref.BorrowSub256(x, y) {
			t.Fatalf("a=%x b=%x: borrow disagrees", x, y)
		}
	})
}

func FuzzNarrowingRightShift512(f *testing.F) {
	f.Add(bytes.Repeat([]byte{0xa5}, 64), uint32(111))
	f.Add(bytes.Repeat([]byte{0xff}, 64), uint32(511))
	f.Add([]byte{1}, uint32(512))

	f.Fuzz(func(t *testing.T, src []byte, shift uint32) {
		x := pad(src, 64)
		got, want := make([]byte, 32), make([]byte, 32)
		NarrowingRightShift512(x, got, shift, 1)
		ref.NarrowingRightShift512(x, want, shift, 1)
		if !bytes.Equal(got, want) {
			t.Fatalf("src=%x shift=%d: got %x want %x", x, shift, got, want)
		}
	})
}
