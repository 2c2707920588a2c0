package harness

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/logging"
	"github.com/agbru/fasteint/internal/memory"
	"github.com/agbru/fasteint/internal/metrics"
)

// Bench times every selected kernel on every backend, one at a time, over
// the same seeded inputs. Shift-only backends are timed on the shift
// kernel alone. The garbage collector is governed by gc for the duration
// of each timed loop.
func Bench(ctx context.Context, opts Options, backends []backend.Kernels, shifters []backend.Shifter,
	gc memory.GCMode, reporter ProgressReporter, out io.Writer) []BenchResult {
	opts.defaults()
	opts.Recorder.IncActiveRuns()
	defer opts.Recorder.DecActiveRuns()

	type job struct {
		op backend.Op
		k  backend.Shifter
	}
	var jobs []job
	for _, op := range opts.Ops {
		for _, k := range backends {
			jobs = append(jobs, job{op, k})
		}
		if op == backend.OpNarrowingRightShift512 {
			for _, sh := range shifters {
				jobs = append(jobs, job{op, sh})
			}
		}
	}

	progressChan := make(chan ProgressUpdate, max(len(jobs), 1)*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(jobs), out)

	results := make([]BenchResult, 0, len(jobs))
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			results = append(results, BenchResult{Op: j.op, Backend: j.k.Name(), Err: err})
			continue
		}
		results = append(results, benchOne(ctx, j.op, j.k, gc, opts))
		progressChan <- ProgressUpdate{TaskIndex: i, Value: 1}
	}
	close(progressChan)
	displayWg.Wait()
	return results
}

// cancelCheckInterval is how many timed calls run between cancellation checks.
const cancelCheckInterval = 64

func benchOne(ctx context.Context, op backend.Op, k backend.Shifter, mode memory.GCMode, opts Options) BenchResult {
	_, span := otel.Tracer(tracerName).Start(ctx, "bench "+string(op))
	defer span.End()
	span.SetAttributes(
		attribute.String("eint.op", string(op)),
		attribute.String("eint.backend", k.Name()),
		attribute.Int("eint.batch", opts.Batch),
		attribute.Int("eint.iterations", opts.Iterations),
	)

	res := BenchResult{Op: op, Backend: k.Name(), Batch: opts.Batch, Iterations: opts.Iterations}
	s, err := newScenario(op, aliasNone, opts.Batch, rand.NewChaCha8(seedFor(opts.Seed, op)))
	if err != nil {
		res.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res
	}
	buf := s.clone()
	shift := opts.Shift
	// Warm caches and page in the buffer.
	s.apply(k, buf, shift)

	in, out := operandSizes(op)
	gcc := memory.NewGCController(mode, uint64(len(buf)+opts.Iterations*opts.Batch*(in+out)))
	if l, ok := opts.Logger.(*logging.ZerologAdapter); ok {
		gcc.SetLogger(l.Zerolog())
	}

	collector := metrics.NewMemoryCollector()
	gcc.Begin()
	before := collector.Snapshot()
	done := ctx.Done()
	start := time.Now()
	for it := range opts.Iterations {
		if it%cancelCheckInterval == 0 {
			select {
			case <-done:
				gcc.End()
				res.Err = ctx.Err()
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, res.Err.Error())
				return res
			default:
			}
		}
		s.apply(k, buf, shift)
	}
	res.Duration = time.Since(start)
	delta := metrics.Delta(before, collector.Snapshot())
	gcc.End()

	elements := float64(opts.Iterations * opts.Batch)
	res.NsPerElement = float64(res.Duration.Nanoseconds()) / elements
	res.AllocsPerCall = float64(delta.Objects) / float64(opts.Iterations)
	res.BytesPerCall = float64(delta.Bytes) / float64(opts.Iterations)
	res.GCs = delta.GCs

	opts.Recorder.ObserveBatch(string(op), k.Name(), opts.Iterations*opts.Batch, res.Duration)
	opts.Recorder.SetNsPerElement(string(op), k.Name(), res.NsPerElement)
	span.SetAttributes(attribute.Float64("eint.ns_per_element", res.NsPerElement))
	opts.Logger.Debug("bench point",
		logging.String("op", string(op)), logging.String("backend", k.Name()),
		logging.Float64("ns_per_element", res.NsPerElement))
	return res
}
