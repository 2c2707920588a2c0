// WARNING: This file uses //go:linkname to reach unexported vector routines
// in math/big. These are not part of Go's public API; if the package stops
// linking after a toolchain upgrade, review the declarations below against
// the current math/big sources.

package oracle

import (
	"math/big"
	_ "unsafe" // Required for go:linkname
)

// Word is a single limb as math/big stores it.
type Word = big.Word

// addVV computes z = x + y element-wise and returns the carry.
//
//go:linkname addVV math/big.addVV
func addVV(z, x, y []Word) (c Word)

// subVV computes z = x - y element-wise and returns the borrow.
//
//go:linkname subVV math/big.subVV
func subVV(z, x, y []Word) (c Word)

// shlVU computes z = x << s and returns the shifted-out high bits.
//
//go:linkname shlVU math/big.shlVU
func shlVU(z, x []Word, s uint) (c Word)

// addMulVVW computes z += x*y element-wise and returns the carry.
//
//go:linkname addMulVVW math/big.addMulVVW
func addMulVVW(z, x []Word, y Word) (c Word)
