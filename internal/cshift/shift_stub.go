//go:build !cgo || !(amd64 || arm64)

package cshift

// Available reports whether the C implementation is linked in.
func Available() bool { return false }

// NarrowingRightShift512 panics for any non-empty batch: this build has no
// C implementation. Callers must check Available first.
func NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	if count <= 0 {
		return
	}
	panic("cshift: built without cgo support")
}
