package harness

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"math/rand/v2"

	"github.com/agbru/fasteint/internal/arena"
	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/batch"
	"github.com/agbru/fasteint/internal/eint"
	apperrors "github.com/agbru/fasteint/internal/errors"
)

// aliasMode selects how the destination is laid out relative to the
// operands.
type aliasMode int

const (
	aliasNone    aliasMode = iota
	aliasA                 // dst is operand a
	aliasB                 // dst is operand b
	aliasInPlace           // shift dst starts at src
)

func (m aliasMode) String() string {
	switch m {
	case aliasA:
		return "same_a"
	case aliasB:
		return "same_b"
	case aliasInPlace:
		return "in_place"
	default:
		return "disjoint"
	}
}

// aliasModes lists the layouts each kernel supports.
func aliasModes(op backend.Op) []aliasMode {
	switch op {
	case backend.OpWrappingMul256, backend.OpWrappingAdd512, backend.OpWrappingSub256:
		return []aliasMode{aliasNone, aliasA, aliasB}
	case backend.OpNarrowingRightShift512:
		return []aliasMode{aliasNone, aliasInPlace}
	default:
		return []aliasMode{aliasNone}
	}
}

// operandSizes returns the input and output element strides of op. The
// borrow compare writes its flag as one byte per element.
func operandSizes(op backend.Op) (in, out int) {
	switch op {
	case backend.OpWideningMul256:
		return eint.Size256, eint.Size512
	case backend.OpWrappingAdd512:
		return eint.Size512, eint.Size512
	case backend.OpBorrowSub256:
		return eint.Size256, 1
	case backend.OpNarrowingRightShift512:
		return eint.Size512, eint.Size256
	default:
		return eint.Size256, eint.Size256
	}
}

// regionGap separates the widening multiply regions so that an
// out-of-bounds write lands in bytes the comparison still covers.
const regionGap = 16

// scenario is one randomized input set for a kernel, laid out in a single
// buffer. For the shift, a is the source and b is empty.
type scenario struct {
	op        backend.Op
	mode      aliasMode
	count     int
	shift     uint32
	buf       []byte
	a, b, dst arena.Region
}

func newScenario(op backend.Op, mode aliasMode, count int, src *rand.ChaCha8) (*scenario, error) {
	s := &scenario{op: op, mode: mode, count: count}
	in, out := operandSizes(op)
	ar := arena.New(2*in*count + out*count + 2*regionGap)

	switch op {
	case backend.OpWideningMul256:
		s.a = ar.Alloc(in, count)
		ar.Pad(regionGap)
		s.b = ar.Alloc(in, count)
		ar.Pad(regionGap)
		s.dst = ar.Alloc(out, count)
	case backend.OpNarrowingRightShift512:
		s.a = ar.Alloc(in, count)
		if mode == aliasInPlace {
			s.dst = arena.Region{Off: s.a.Off, Stride: out, Count: count}
		} else {
			s.dst = ar.Alloc(out, count)
		}
		s.shift = uint32(src.Uint64())
	default:
		s.a = ar.Alloc(in, count)
		s.b = ar.Alloc(in, count)
		switch mode {
		case aliasA:
			s.dst = s.a
		case aliasB:
			s.dst = s.b
		default:
			s.dst = ar.Alloc(out, count)
		}
	}

	if err := ar.Fill(src); err != nil {
		return nil, fmt.Errorf("filling %s inputs: %w", op, err)
	}
	s.buf = ar.Bytes()
	s.seedEdges(src)
	return s, nil
}

// seedEdges overwrites a share of the operands with zero, all-ones, or (for
// the borrow compare) equal pairs, so carry and borrow chains get exercised.
func (s *scenario) seedEdges(src *rand.ChaCha8) {
	for i := range s.count {
		for _, r := range []arena.Region{s.a, s.b} {
			if r.Count == 0 {
				continue
			}
			switch src.Uint64() % 8 {
			case 0:
				clear(r.Elem(s.buf, i))
			case 1:
				e := r.Elem(s.buf, i)
				for j := range e {
					e[j] = 0xff
				}
			}
		}
		if s.op == backend.OpBorrowSub256 && src.Uint64()%8 == 2 {
			copy(s.b.Elem(s.buf, i), s.a.Elem(s.buf, i))
		}
	}
}

// clone returns a private copy of the input buffer.
func (s *scenario) clone() []byte { return bytes.Clone(s.buf) }

// apply runs k over buf directly. Shift-only backends must only be given
// shift scenarios.
func (s *scenario) apply(k backend.Shifter, buf []byte, shift uint32) {
	if s.op == backend.OpNarrowingRightShift512 {
		k.NarrowingRightShift512(s.a.Bytes(buf), s.dst.Bytes(buf), shift, s.count)
		return
	}
	kk := k.(backend.Kernels)
	switch s.op {
	case backend.OpWideningMul256:
		kk.WideningMul256(buf, s.dst.Off, s.a.Off, s.b.Off, s.count)
	case backend.OpWrappingMul256:
		kk.WrappingMul256(s.a.Bytes(buf), s.b.Bytes(buf), s.dst.Bytes(buf), s.count)
	case backend.OpWrappingAdd512:
		kk.WrappingAdd512(s.a.Bytes(buf), s.b.Bytes(buf), s.dst.Bytes(buf), s.count)
	case backend.OpWrappingSub256:
		kk.WrappingSub256(s.a.Bytes(buf), s.b.Bytes(buf), s.dst.Bytes(buf), s.count)
	case backend.OpBorrowSub256:
		for i := range s.count {
			s.dst.Elem(buf, i)[0] = flag(kk.BorrowSub256(s.a.Elem(buf, i), s.b.Elem(buf, i)))
		}
	}
}

// applyExec runs the scenario through a batch executor.
func (s *scenario) applyExec(ctx context.Context, e *batch.Executor, buf []byte, shift uint32) error {
	switch s.op {
	case backend.OpWideningMul256:
		return e.WideningMul256(ctx, buf, s.dst.Off, s.a.Off, s.b.Off, s.count)
	case backend.OpWrappingMul256:
		return e.WrappingMul256(ctx, s.a.Bytes(buf), s.b.Bytes(buf), s.dst.Bytes(buf), s.count)
	case backend.OpWrappingAdd512:
		return e.WrappingAdd512(ctx, s.a.Bytes(buf), s.b.Bytes(buf), s.dst.Bytes(buf), s.count)
	case backend.OpWrappingSub256:
		return e.WrappingSub256(ctx, s.a.Bytes(buf), s.b.Bytes(buf), s.dst.Bytes(buf), s.count)
	case backend.OpBorrowSub256:
		for i := range s.count {
			borrow, err := e.BorrowSub256(s.a.Elem(buf, i), s.b.Elem(buf, i))
			if err != nil {
				return err
			}
			s.dst.Elem(buf, i)[0] = flag(borrow)
		}
		return nil
	case backend.OpNarrowingRightShift512:
		return e.NarrowingRightShift512(ctx, s.a.Bytes(buf), s.dst.Bytes(buf), shift, s.count)
	}
	return fmt.Errorf("unknown kernel %q", s.op)
}

// compare returns a MismatchError locating the first differing byte of
// got and want, or nil when they are equal.
func (s *scenario) compare(got, want []byte, reference string) error {
	if bytes.Equal(got, want) {
		return nil
	}
	i := 0
	for got[i] == want[i] {
		i++
	}
	lo, hi, elem := i, i+1, -1
	if i >= s.dst.Off && i < s.dst.End() {
		elem = (i - s.dst.Off) / s.dst.Stride
		lo = s.dst.Off + elem*s.dst.Stride
		hi = lo + s.dst.Stride
	}
	return apperrors.MismatchError{
		Kernel:  fmt.Sprintf("%s[%s]", s.op, s.mode),
		Backend: reference,
		Element: elem,
		Got:     hex.EncodeToString(got[lo:hi]),
		Want:    hex.EncodeToString(want[lo:hi]),
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// seedFor derives the ChaCha8 seed of one (run seed, kernel) pair, so that
// every reference sees the same inputs for a kernel.
func seedFor(seed uint64, op backend.Op) [32]byte {
	var s [32]byte
	for i := range 8 {
		s[i] = byte(seed >> (8 * i))
	}
	copy(s[8:], string(op))
	return s
}
