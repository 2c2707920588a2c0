// Package backend defines the pluggable implementations of the fixed-width
// kernels and the registry the verification harness selects them from.
//
// One backend is the fast limb code in package eint; the others are
// references. Every backend exposes the same batched signatures so results
// can be compared byte for byte.
package backend

import (
	"fmt"
	"strings"

	"github.com/agbru/fasteint/internal/eint"
)

// Op names one batched kernel.
type Op string

// The six kernels.
const (
	OpWideningMul256         Op = "widening_mul_256"
	OpWrappingMul256         Op = "wrapping_mul_256"
	OpWrappingAdd512         Op = "wrapping_add_512"
	OpWrappingSub256         Op = "wrapping_sub_256"
	OpBorrowSub256           Op = "borrow_sub_256"
	OpNarrowingRightShift512 Op = "narrowing_right_shift_512"
)

// AllOps returns every kernel in a stable order.
func AllOps() []Op {
	return []Op{
		OpWideningMul256,
		OpWrappingMul256,
		OpWrappingAdd512,
		OpWrappingSub256,
		OpBorrowSub256,
		OpNarrowingRightShift512,
	}
}

// ParseOps resolves a comma-separated list of kernel names. "all" or an
// empty string selects every kernel.
func ParseOps(list string) ([]Op, error) {
	list = strings.TrimSpace(list)
	if list == "" || list == "all" {
		return AllOps(), nil
	}
	known := make(map[Op]bool)
	for _, op := range AllOps() {
		known[op] = true
	}
	var ops []Op
	for _, name := range strings.Split(list, ",") {
		op := Op(strings.TrimSpace(name))
		if !known[op] {
			return nil, fmt.Errorf("unknown kernel %q", op)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Shifter is an implementation of the narrowing right shift alone.
type Shifter interface {
	Name() string
	NarrowingRightShift512(src, dst []byte, shift uint32, count int)
}

// Kernels is an implementation of all six batched kernels.
type Kernels interface {
	Shifter
	WideningMul256(buf []byte, dstOff, aOff, bOff, count int)
	WrappingMul256(a, b, dst []byte, count int)
	WrappingAdd512(a, b, dst []byte, count int)
	WrappingSub256(a, b, dst []byte, count int)
	BorrowSub256(a, b []byte) bool
}

// Fast is the limb-based implementation from package eint.
type Fast struct{}

// Name identifies the backend in reports.
func (Fast) Name() string { return "fast" }

func (Fast) WideningMul256(buf []byte, dstOff, aOff, bOff, count int) {
	eint.WideningMul256(buf, dstOff, aOff, bOff, count)
}

func (Fast) WrappingMul256(a, b, dst []byte, count int) { eint.WrappingMul256(a, b, dst, count) }

func (Fast) WrappingAdd512(a, b, dst []byte, count int) { eint.WrappingAdd512(a, b, dst, count) }

func (Fast) WrappingSub256(a, b, dst []byte, count int) { eint.WrappingSub256(a, b, dst, count) }

func (Fast) BorrowSub256(a, b []byte) bool { return eint.BorrowSub256(a, b) }

func (Fast) NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	eint.NarrowingRightShift512(src, dst, shift, count)
}
