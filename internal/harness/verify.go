package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/batch"
	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/logging"
	"github.com/agbru/fasteint/internal/metrics"
)

const tracerName = "github.com/agbru/fasteint/internal/harness"

// allocRuns is the number of calls averaged by the allocation check.
const allocRuns = 200

// Options configure Verify and Bench.
type Options struct {
	Ops []backend.Op
	// Batch is the number of elements per batched call.
	Batch int
	// Iterations is the number of random batches per task (Verify) or
	// timed calls per backend (Bench).
	Iterations int
	Seed       uint64
	// Shift is the shift amount Bench uses.
	Shift uint32
	// Threshold and Workers configure the executor that runs the fast
	// backend during Verify.
	Threshold int
	Workers   int
	Recorder  Recorder
	Logger    logging.Logger
}

func (o *Options) defaults() {
	if len(o.Ops) == 0 {
		o.Ops = backend.AllOps()
	}
	if o.Batch <= 0 {
		o.Batch = 128
	}
	if o.Iterations <= 0 {
		o.Iterations = 1
	}
	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}
}

// verifyTask compares the fast backend with one reference for one kernel.
type verifyTask struct {
	op  backend.Op
	ref backend.Shifter
}

// Verify runs every selected kernel of fast through a batch executor for
// opts.Iterations random batches per reference and compares the whole
// buffer byte-for-byte with what the reference produced, under every
// supported aliasing layout. Shift-only references take part in the shift
// kernel alone, and each shift batch is also run with the shift offset by
// 512 to check wraparound. An allocation check per kernel follows. Tasks
// run concurrently; results come back in task order.
func Verify(ctx context.Context, opts Options, fast backend.Kernels, refs []backend.Kernels,
	shifters []backend.Shifter, reporter ProgressReporter, out io.Writer) []VerifyResult {
	opts.defaults()
	opts.Recorder.IncActiveRuns()
	defer opts.Recorder.DecActiveRuns()

	var tasks []verifyTask
	for _, op := range opts.Ops {
		for _, ref := range refs {
			if ref.Name() != fast.Name() {
				tasks = append(tasks, verifyTask{op: op, ref: ref})
			}
		}
		if op == backend.OpNarrowingRightShift512 {
			for _, sh := range shifters {
				tasks = append(tasks, verifyTask{op: op, ref: sh})
			}
		}
	}

	execOpts := []batch.Option{
		batch.WithThreshold(opts.Threshold),
		batch.WithObserver(opts.Recorder),
		batch.WithLogger(opts.Logger.Named("batch")),
	}
	if opts.Workers > 0 {
		execOpts = append(execOpts, batch.WithWorkers(opts.Workers))
	}
	exec := batch.NewExecutor(fast, execOpts...)

	results := make([]VerifyResult, len(tasks), len(tasks)+len(opts.Ops))
	progressChan := make(chan ProgressUpdate, max(len(tasks), 1)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(tasks), out)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = runVerifyTask(gctx, i, task, exec, opts, progressChan)
			return nil
		})
	}
	g.Wait()
	close(progressChan)
	displayWg.Wait()

	for _, op := range opts.Ops {
		results = append(results, checkAllocs(ctx, op, fast, opts))
	}
	return results
}

func runVerifyTask(ctx context.Context, index int, task verifyTask, exec *batch.Executor,
	opts Options, progressChan chan<- ProgressUpdate) VerifyResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "verify "+string(task.op))
	defer span.End()
	span.SetAttributes(
		attribute.String("eint.op", string(task.op)),
		attribute.String("eint.reference", task.ref.Name()),
		attribute.String("eint.backend", exec.Backend()),
		attribute.Int("eint.batch", opts.Batch),
	)

	res := VerifyResult{Op: task.op, Check: CheckOracle, Reference: task.ref.Name()}
	start := time.Now()
	src := rand.NewChaCha8(seedFor(opts.Seed, task.op))

	for it := 0; it < opts.Iterations && res.Err == nil; it++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		for _, mode := range aliasModes(task.op) {
			s, err := newScenario(task.op, mode, opts.Batch, src)
			if err != nil {
				res.Err = err
				break
			}
			if err := verifyScenario(ctx, s, exec, task.ref); err != nil {
				res.Err = err
				if errors.As(err, new(apperrors.MismatchError)) {
					opts.Recorder.RecordMismatch(string(task.op), task.ref.Name())
				}
				break
			}
			res.Elements += s.count
		}
		res.Batches++

		select {
		case progressChan <- ProgressUpdate{TaskIndex: index, Value: float64(it+1) / float64(opts.Iterations)}:
		case <-ctx.Done():
		}
	}
	res.Duration = time.Since(start)

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		opts.Logger.Error("verification failed", res.Err,
			logging.String("op", string(task.op)), logging.String("reference", task.ref.Name()),
			logging.Uint64("seed", opts.Seed), logging.Uint32("shift", opts.Shift))
	} else {
		opts.Logger.Debug("verification passed",
			logging.String("op", string(task.op)), logging.String("reference", task.ref.Name()),
			logging.Int("elements", res.Elements))
	}
	return res
}

// verifyScenario runs s through the executor and through ref on separate
// copies and compares them. The shift is additionally run with its amount
// offset by 512, which must not change the result.
func verifyScenario(ctx context.Context, s *scenario, exec *batch.Executor, ref backend.Shifter) error {
	want := s.clone()
	s.apply(ref, want, s.shift)

	got := s.clone()
	if err := s.applyExec(ctx, exec, got, s.shift); err != nil {
		return apperrors.KernelError{Kernel: string(s.op), Cause: err}
	}
	if err := s.compare(got, want, ref.Name()); err != nil {
		return err
	}

	if s.op != backend.OpNarrowingRightShift512 {
		return nil
	}
	wrapped := s.clone()
	if err := s.applyExec(ctx, exec, wrapped, s.shift^512); err != nil {
		return apperrors.KernelError{Kernel: string(s.op), Cause: err}
	}
	if err := s.compare(wrapped, want, ref.Name()+" (shift+512)"); err != nil {
		return err
	}
	return nil
}

// checkAllocs averages heap allocations over allocRuns direct calls of the
// fast kernel, rounding down the way testing.AllocsPerRun does so that
// stray allocations by other goroutines do not count.
func checkAllocs(ctx context.Context, op backend.Op, fast backend.Kernels, opts Options) VerifyResult {
	res := VerifyResult{Op: op, Check: CheckAllocs}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	s, err := newScenario(op, aliasNone, opts.Batch, rand.NewChaCha8(seedFor(opts.Seed, op)))
	if err != nil {
		res.Err = err
		return res
	}
	buf := s.clone()
	s.apply(fast, buf, s.shift)

	collector := metrics.NewMemoryCollector()
	start := time.Now()
	before := collector.Snapshot()
	for range allocRuns {
		s.apply(fast, buf, s.shift)
	}
	delta := metrics.Delta(before, collector.Snapshot())
	res.Duration = time.Since(start)
	res.Batches = allocRuns
	res.Elements = allocRuns * s.count

	if perCall := delta.Objects / allocRuns; perCall > 0 {
		res.Err = apperrors.AllocationError{Kernel: string(op), Allocs: float64(delta.Objects) / allocRuns}
	}
	return res
}

// AnalyzeVerifyResults presents results and returns the process exit code:
// success when every task passed, ExitErrorMismatch when any kernel
// disagreed with a reference, and the code of the first other error
// otherwise.
func AnalyzeVerifyResults(results []VerifyResult, presenter Presenter, out io.Writer) int {
	presenter.PresentVerify(results, out)

	var firstErr error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if errors.As(r.Err, new(apperrors.MismatchError)) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! A kernel disagreed with a reference backend.\n")
			return apperrors.ExitErrorMismatch
		}
		if firstErr == nil {
			firstErr = r.Err
		}
	}
	if firstErr != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure.\n")
		return apperrors.ExitCode(firstErr)
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. All kernels match every reference.\n")
	return apperrors.ExitSuccess
}
