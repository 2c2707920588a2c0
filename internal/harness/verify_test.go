package harness_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"

	"github.com/agbru/fasteint/internal/backend"
	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/harness"
	"github.com/agbru/fasteint/internal/harness/mocks"
	"github.com/agbru/fasteint/internal/logging"
	"github.com/agbru/fasteint/internal/oracle"
)

// brokenAdd corrupts the top byte of every wrapping add result.
type brokenAdd struct{ oracle.Big }

func (brokenAdd) Name() string { return "broken" }

func (b brokenAdd) WrappingAdd512(a, x, dst []byte, count int) {
	b.Big.WrappingAdd512(a, x, dst, count)
	for i := range count {
		dst[i*64+63] ^= 0x80
	}
}

// shiftOnly exposes only the shift of the big-integer oracle.
type shiftOnly struct{}

func (shiftOnly) Name() string { return "big-shift" }

func (shiftOnly) NarrowingRightShift512(src, dst []byte, shift uint32, count int) {
	oracle.Big{}.NarrowingRightShift512(src, dst, shift, count)
}

func TestVerifyAgainstReferences(t *testing.T) {
	t.Parallel()
	opts := harness.Options{Batch: 16, Iterations: 3, Seed: 1, Threshold: 4, Workers: 2}
	refs := []backend.Kernels{oracle.Big{}, oracle.Words{}, backend.Fast{}}
	shifters := []backend.Shifter{shiftOnly{}}

	results := harness.Verify(context.Background(), opts, backend.Fast{}, refs, shifters,
		harness.NullProgressReporter{}, io.Discard)

	ops := backend.AllOps()
	// fast is skipped as its own reference.
	want := len(ops)*2 + len(shifters) + len(ops)
	if len(results) != want {
		t.Fatalf("got %d results, want %d", len(results), want)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s/%s/%s: %v", r.Op, r.Check, r.Reference, r.Err)
		}
		if r.Check == harness.CheckOracle && r.Batches != opts.Iterations {
			t.Errorf("%s vs %s: %d batches, want %d", r.Op, r.Reference, r.Batches, opts.Iterations)
		}
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockRecorder(ctrl)
	rec.EXPECT().IncActiveRuns()
	rec.EXPECT().DecActiveRuns()
	rec.EXPECT().ObserveBatch(gomock.Any(), "fast", gomock.Any(), gomock.Any()).AnyTimes()
	rec.EXPECT().RecordMismatch(string(backend.OpWrappingAdd512), "broken").Times(1)

	opts := harness.Options{
		Ops:        []backend.Op{backend.OpWrappingAdd512},
		Batch:      8,
		Iterations: 4,
		Recorder:   rec,
	}
	results := harness.Verify(context.Background(), opts, backend.Fast{},
		[]backend.Kernels{brokenAdd{}}, nil, harness.NullProgressReporter{}, io.Discard)

	var mismatch apperrors.MismatchError
	if !errors.As(results[0].Err, &mismatch) {
		t.Fatalf("err = %v, want MismatchError", results[0].Err)
	}
	if mismatch.Element != 0 || mismatch.Backend != "broken" {
		t.Errorf("mismatch = %+v, want element 0 against broken", mismatch)
	}
	if results[0].Batches != 1 {
		t.Errorf("task kept running after a mismatch: %d batches", results[0].Batches)
	}
}

func TestVerifyLogsThroughComponents(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	opts := harness.Options{
		Ops:        []backend.Op{backend.OpWrappingAdd512},
		Batch:      8,
		Iterations: 1,
		Seed:       5,
		Shift:      300,
		Threshold:  2,
		Workers:    2,
		Logger:     logging.NewLogger(zerolog.SyncWriter(&buf), "harness"),
	}
	harness.Verify(context.Background(), opts, backend.Fast{},
		[]backend.Kernels{brokenAdd{}}, nil, harness.NullProgressReporter{}, io.Discard)

	var failed, split bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		switch entry["message"] {
		case "verification failed":
			failed = true
			if entry["component"] != "harness" || entry["seed"] != float64(5) || entry["shift"] != float64(300) {
				t.Errorf("failure entry = %v", entry)
			}
		case "splitting batch":
			split = true
			if entry["component"] != "batch" {
				t.Errorf("executor logged as %v, want batch", entry["component"])
			}
		}
	}
	if !failed || !split {
		t.Errorf("missing entries (failed=%v split=%v):\n%s", failed, split, buf.String())
	}
}

func TestVerifyReportsProgress(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockProgressReporter(ctrl)

	var (
		mu      sync.Mutex
		updates int
		last    float64
	)
	reporter.EXPECT().
		DisplayProgress(gomock.Any(), gomock.Any(), 1, gomock.Any()).
		Do(func(wg *sync.WaitGroup, ch <-chan harness.ProgressUpdate, _ int, _ io.Writer) {
			defer wg.Done()
			for u := range ch {
				mu.Lock()
				updates++
				last = u.Value
				mu.Unlock()
			}
		})

	opts := harness.Options{Ops: []backend.Op{backend.OpBorrowSub256}, Batch: 4, Iterations: 5}
	harness.Verify(context.Background(), opts, backend.Fast{}, []backend.Kernels{oracle.Big{}}, nil, reporter, io.Discard)

	mu.Lock()
	defer mu.Unlock()
	if updates != 5 || last != 1 {
		t.Errorf("got %d updates ending at %v, want 5 ending at 1", updates, last)
	}
}

func TestVerifyCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := harness.Verify(ctx, harness.Options{Batch: 4, Iterations: 2}, backend.Fast{},
		[]backend.Kernels{oracle.Big{}}, nil, harness.NullProgressReporter{}, io.Discard)
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s/%s: err = %v, want context.Canceled", r.Op, r.Check, r.Err)
		}
	}
}

func TestAnalyzeVerifyResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		results []harness.VerifyResult
		want    int
	}{
		{
			name:    "all pass",
			results: []harness.VerifyResult{{Op: backend.OpWrappingAdd512}, {Op: backend.OpBorrowSub256}},
			want:    apperrors.ExitSuccess,
		},
		{
			name: "mismatch wins over other failures",
			results: []harness.VerifyResult{
				{Op: backend.OpWrappingAdd512, Err: apperrors.AllocationError{Kernel: "wrapping_add_512", Allocs: 1}},
				{Op: backend.OpBorrowSub256, Err: apperrors.MismatchError{Kernel: "borrow_sub_256"}},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name:    "canceled",
			results: []harness.VerifyResult{{Op: backend.OpWrappingAdd512, Err: context.Canceled}},
			want:    apperrors.ExitErrorCanceled,
		},
		{
			name:    "allocation",
			results: []harness.VerifyResult{{Op: backend.OpWrappingAdd512, Err: apperrors.AllocationError{Kernel: "x", Allocs: 2}}},
			want:    apperrors.ExitErrorGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			presenter := mocks.NewMockPresenter(ctrl)
			presenter.EXPECT().PresentVerify(tt.results, io.Discard).Times(1)

			if got := harness.AnalyzeVerifyResults(tt.results, presenter, io.Discard); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}
