package eint_test

import (
	"fmt"

	"github.com/agbru/fasteint/internal/eint"
)

// ExampleWideningMul256 multiplies two 256-bit values laid out back to back
// in one buffer and reads both halves of the product.
func ExampleWideningMul256() {
	buf := make([]byte, 32+32+64)
	a := eint.Uint256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	b := eint.Uint256{2}
	a.PutBytes(buf[0:])
	b.PutBytes(buf[32:])

	eint.WideningMul256(buf, 64, 0, 32, 1)

	var p eint.Uint512
	p.SetBytes(buf[64:])
	fmt.Printf("lo=%x\nhi=%x\n", p.Lo(), p.Hi())
	// Output:
	// lo=[fffffffffffffffe ffffffffffffffff ffffffffffffffff ffffffffffffffff]
	// hi=[1 0 0 0]
}

// ExampleNarrowingRightShift512 shifts in place: the 32-byte results
// overwrite the front of the 64-byte source elements.
func ExampleNarrowingRightShift512() {
	buf := make([]byte, 2*64)
	x := eint.Uint512{0, 0, 0, 0, 1, 2, 3, 4}
	x.PutBytes(buf[0:])
	x.PutBytes(buf[64:])

	eint.NarrowingRightShift512(buf, buf, 256, 2)

	var r0, r1 eint.Uint256
	r0.SetBytes(buf[0:])
	r1.SetBytes(buf[32:])
	fmt.Println(r0, r1)
	// Output:
	// [1 2 3 4] [1 2 3 4]
}
