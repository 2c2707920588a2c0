// Package eint implements batched fixed-width unsigned integer kernels over
// contiguous little-endian byte buffers.
//
// Two widths exist: 256-bit values occupy 32 bytes and 512-bit values occupy
// 64 bytes, least-significant byte first. During computation a value is held
// as 64-bit limbs (Uint256 and Uint512), limb 0 being the least significant.
//
// Every batched kernel processes count independent elements in ascending
// index order. Each element is fully loaded before its result is stored,
// which is what makes the documented aliasing modes safe:
//
//   - WrappingAdd512, WrappingSub256 and WrappingMul256 accept a destination
//     equal to either source.
//   - NarrowingRightShift512 accepts a destination that starts at the same
//     address as its source.
//   - WideningMul256 expects its destination region to be disjoint from both
//     operand regions.
//
// Kernels have no error channel. A buffer that is too short for
// offset+count*stride is a caller bug and surfaces as a slice bounds panic
// raised before the first element is written.
package eint
