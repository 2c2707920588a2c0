// Package cshift links a C implementation of the 512-to-256 narrowing right
// shift. It exists as an independent second implementation of the shift,
// compiled by the system C compiler, for cross-checking and benchmarking the
// Go kernel. Without cgo (or on hosts other than little-endian amd64 and
// arm64) the package builds a stub and Available reports false.
package cshift

// Shifter adapts the package functions to the harness's shifter interface.
type Shifter struct{}

// Name identifies the backend in reports.
func (Shifter) Name() string { return "c" }

// NarrowingRightShift512 calls the package-level function.
func (Shifter) NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	NarrowingRightShift512(src, dst, shift, count)
}
