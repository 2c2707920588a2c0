package eint

import "encoding/binary"

// Byte sizes of the supported operand widths.
const (
	Size256 = 32
	Size512 = 64
)

// Uint256 is a 256-bit unsigned integer as four little-endian limbs.
type Uint256 [4]uint64

// Uint512 is a 512-bit unsigned integer as eight little-endian limbs.
type Uint512 [8]uint64

// SetBytes loads z from the first 32 bytes of b.
func (z *Uint256) SetBytes(b []byte) *Uint256 {
	_ = b[Size256-1]
	z[0] = binary.LittleEndian.Uint64(b[0:8])
	z[1] = binary.LittleEndian.Uint64(b[8:16])
	z[2] = binary.LittleEndian.Uint64(b[16:24])
	z[3] = binary.LittleEndian.Uint64(b[24:32])
	return z
}

// PutBytes stores z into the first 32 bytes of b.
func (z *Uint256) PutBytes(b []byte) {
	_ = b[Size256-1]
	binary.LittleEndian.PutUint64(b[0:8], z[0])
	binary.LittleEndian.PutUint64(b[8:16], z[1])
	binary.LittleEndian.PutUint64(b[16:24], z[2])
	binary.LittleEndian.PutUint64(b[24:32], z[3])
}

// IsZero reports whether z == 0.
func (z *Uint256) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3] == 0
}

// SetBytes loads z from the first 64 bytes of b.
func (z *Uint512) SetBytes(b []byte) *Uint512 {
	_ = b[Size512-1]
	for i := range z {
		z[i] = binary.LittleEndian.Uint64(b[8*i : 8*i+8])
	}
	return z
}

// PutBytes stores z into the first 64 bytes of b.
func (z *Uint512) PutBytes(b []byte) {
	_ = b[Size512-1]
	for i, v := range z {
		binary.LittleEndian.PutUint64(b[8*i:8*i+8], v)
	}
}

// Lo returns the low 256 bits of z.
func (z *Uint512) Lo() Uint256 {
	return Uint256{z[0], z[1], z[2], z[3]}
}

// Hi returns the high 256 bits of z.
func (z *Uint512) Hi() Uint256 {
	return Uint256{z[4], z[5], z[6], z[7]}
}

// RegionEnd returns the exclusive byte bound of a region of count elements
// of the given stride starting at off.
func RegionEnd(off, stride, count int) int {
	return off + stride*count
}
