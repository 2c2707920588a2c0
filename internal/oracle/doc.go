// Package oracle provides reference implementations of the fixed-width
// kernels, built on arbitrary-precision arithmetic and deliberately
// independent of the limb code in package eint.
//
// Uint is the generic reference value. Big, Words and (with the gmp build
// tag) GMP expose it as batched backends with the same signatures as the
// fast kernels so the verification harness can compare them byte for byte.
package oracle
