//go:build cgo && (amd64 || arm64)

package cshift

/*
#include <stdint.h>
#include <string.h>

static void narrowing_right_shift_512(const uint8_t *src, uint8_t *dst, uint32_t shift, uint64_t n) {
	shift &= 511;
	uint64_t bit = shift % 64;
	uint64_t start = shift / 64;
	uint64_t words = (8 - start) > 5 ? 5 : (8 - start);

	for (uint64_t i = 0; i < n; i++) {
		uint64_t v[5] = {0, 0, 0, 0, 0};
		memcpy(v, src + i * 64 + start * 8, words * 8);

		if (bit > 0) {
			v[0] = (v[0] >> bit) | (v[1] << (64 - bit));
			v[1] = (v[1] >> bit) | (v[2] << (64 - bit));
			v[2] = (v[2] >> bit) | (v[3] << (64 - bit));
			v[3] = (v[3] >> bit) | (v[4] << (64 - bit));
		}

		memcpy(dst + i * 32, v, 32);
	}
}
*/
import "C"

import "unsafe"

// Available reports whether the C implementation is linked in.
func Available() bool { return true }

// NarrowingRightShift512 stores the low 256 bits of src[i] >> (shift mod 512)
// into dst[i] for i in [0, count). dst may start at the same address as src.
func NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	if count <= 0 {
		return
	}
	_ = src[count*64-1]
	_ = dst[count*32-1]
	C.narrowing_right_shift_512(
		(*C.uint8_t)(unsafe.Pointer(&src[0])),
		(*C.uint8_t)(unsafe.Pointer(&dst[0])),
		C.uint32_t(shift),
		C.uint64_t(count),
	)
}
