// Package batch runs the batched kernels of a backend across several
// goroutines. A call is cut into disjoint element ranges only when no
// element's output can land on another chunk's input; anything else runs as
// one sequential kernel call so the kernel's own aliasing guarantees hold.
package batch

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/eint"
	"github.com/agbru/fasteint/internal/logging"
)

// Observer receives one callback per kernel invocation (per chunk when a
// call is split).
type Observer interface {
	ObserveBatch(op, backend string, elements int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveBatch(string, string, int, time.Duration) {}

// Executor dispatches batched kernel calls to a backend.
type Executor struct {
	kernels   backend.Kernels
	threshold int
	workers   int
	observer  Observer
	logger    logging.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithThreshold sets the minimum number of elements per chunk. Batches
// smaller than twice the threshold run sequentially; zero or less disables
// splitting entirely.
func WithThreshold(n int) Option { return func(e *Executor) { e.threshold = n } }

// WithWorkers bounds the number of concurrent chunks.
func WithWorkers(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithObserver installs a per-call observer, typically the Prometheus metrics.
func WithObserver(o Observer) Option { return func(e *Executor) { e.observer = o } }

// WithLogger installs a logger for dispatch decisions.
func WithLogger(l logging.Logger) Option { return func(e *Executor) { e.logger = l } }

// NewExecutor returns an executor over k.
func NewExecutor(k backend.Kernels, opts ...Option) *Executor {
	e := &Executor{
		kernels:  k,
		workers:  runtime.GOMAXPROCS(0),
		observer: nopObserver{},
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the name of the wrapped backend.
func (e *Executor) Backend() string { return e.kernels.Name() }

// chunks returns the chunk size to use for count elements, or 0 when the
// call should not be split.
func (e *Executor) chunks(count int) int {
	if e.threshold <= 0 || e.workers <= 1 || count < 2*e.threshold {
		return 0
	}
	size := (count + e.workers - 1) / e.workers
	return max(size, e.threshold)
}

// run executes fn over [0, count), split when split is true and the batch is
// large enough.
func (e *Executor) run(ctx context.Context, op backend.Op, count int, split bool, fn func(lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	size := 0
	if split {
		size = e.chunks(count)
	} else if e.threshold > 0 && count >= 2*e.threshold {
		e.logger.Debug("overlapping regions, running sequentially",
			logging.String("op", string(op)), logging.Int("count", count))
	}

	name := e.kernels.Name()
	if size == 0 {
		start := time.Now()
		fn(0, count)
		e.observer.ObserveBatch(string(op), name, count, time.Since(start))
		return nil
	}

	e.logger.Debug("splitting batch",
		logging.String("op", string(op)), logging.Int("count", count), logging.Int("chunk", size))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for lo := 0; lo < count; lo += size {
		hi := min(lo+size, count)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			fn(lo, hi)
			e.observer.ObserveBatch(string(op), name, hi-lo, time.Since(start))
			return nil
		})
	}
	return g.Wait()
}

// WideningMul256 validates the three regions of buf and runs the widening
// multiply. A destination overlapping either operand is never split.
func (e *Executor) WideningMul256(ctx context.Context, buf []byte, dstOff, aOff, bOff, count int) error {
	if err := checkRegion("dst", buf, dstOff, eint.Size512, count); err != nil {
		return err
	}
	if err := checkRegion("a", buf, aOff, eint.Size256, count); err != nil {
		return err
	}
	if err := checkRegion("b", buf, bOff, eint.Size256, count); err != nil {
		return err
	}
	dst := span(buf, dstOff, eint.Size512*count)
	split := !dst.overlaps(span(buf, aOff, eint.Size256*count)) &&
		!dst.overlaps(span(buf, bOff, eint.Size256*count))

	return e.run(ctx, backend.OpWideningMul256, count, split, func(lo, hi int) {
		e.kernels.WideningMul256(buf, dstOff+lo*eint.Size512, aOff+lo*eint.Size256, bOff+lo*eint.Size256, hi-lo)
	})
}

// elementwise runs a same-stride kernel over a, b and dst.
func (e *Executor) elementwise(ctx context.Context, op backend.Op, stride int, a, b, dst []byte, count int,
	kernel func(a, b, dst []byte, count int)) error {
	for _, r := range []struct {
		name string
		buf  []byte
	}{{"a", a}, {"b", b}, {"dst", dst}} {
		if err := checkRegion(r.name, r.buf, 0, stride, count); err != nil {
			return err
		}
	}
	n := stride * count
	d := span(dst, 0, n)
	split := splittable(d, span(a, 0, n)) && splittable(d, span(b, 0, n))

	return e.run(ctx, op, count, split, func(lo, hi int) {
		kernel(a[lo*stride:], b[lo*stride:], dst[lo*stride:], hi-lo)
	})
}

// WrappingMul256 validates the slices and runs the wrapping multiply.
func (e *Executor) WrappingMul256(ctx context.Context, a, b, dst []byte, count int) error {
	return e.elementwise(ctx, backend.OpWrappingMul256, eint.Size256, a, b, dst, count, e.kernels.WrappingMul256)
}

// WrappingAdd512 validates the slices and runs the wrapping add.
func (e *Executor) WrappingAdd512(ctx context.Context, a, b, dst []byte, count int) error {
	return e.elementwise(ctx, backend.OpWrappingAdd512, eint.Size512, a, b, dst, count, e.kernels.WrappingAdd512)
}

// WrappingSub256 validates the slices and runs the wrapping subtract.
func (e *Executor) WrappingSub256(ctx context.Context, a, b, dst []byte, count int) error {
	return e.elementwise(ctx, backend.OpWrappingSub256, eint.Size256, a, b, dst, count, e.kernels.WrappingSub256)
}

// BorrowSub256 validates both operands and reports whether a < b.
func (e *Executor) BorrowSub256(a, b []byte) (bool, error) {
	if err := checkRegion("a", a, 0, eint.Size256, 1); err != nil {
		return false, err
	}
	if err := checkRegion("b", b, 0, eint.Size256, 1); err != nil {
		return false, err
	}
	start := time.Now()
	borrow := e.kernels.BorrowSub256(a, b)
	e.observer.ObserveBatch(string(backend.OpBorrowSub256), e.kernels.Name(), 1, time.Since(start))
	return borrow, nil
}

// NarrowingRightShift512 validates both slices and runs the shift. Any
// overlap between source and destination, including the in-place mode,
// forces a single sequential call: element i writes bytes that belong to
// source element i/2.
func (e *Executor) NarrowingRightShift512(ctx context.Context, src, dst []byte, shift uint32, count int) error {
	if err := checkRegion("src", src, 0, eint.Size512, count); err != nil {
		return err
	}
	if err := checkRegion("dst", dst, 0, eint.Size256, count); err != nil {
		return err
	}
	split := !span(dst, 0, eint.Size256*count).overlaps(span(src, 0, eint.Size512*count))

	return e.run(ctx, backend.OpNarrowingRightShift512, count, split, func(lo, hi int) {
		e.kernels.NarrowingRightShift512(src[lo*eint.Size512:], dst[lo*eint.Size256:], shift, hi-lo)
	})
}
