package harness_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/harness"
	"github.com/agbru/fasteint/internal/memory"
	"github.com/agbru/fasteint/internal/oracle"
)

// slowReporter drains the channel with a pause after every update.
type slowReporter struct{ delay time.Duration }

func (r slowReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan harness.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range ch {
		time.Sleep(r.delay)
	}
}

// TestHarnessNoDeadlock checks that Verify and Bench return when progress
// outpaces the reporter and when the run is canceled midway.
func TestHarnessNoDeadlock(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		reporter harness.ProgressReporter
		cancel   time.Duration
	}{
		{name: "null_reporter", reporter: harness.NullProgressReporter{}},
		{name: "slow_reporter", reporter: slowReporter{delay: time.Millisecond}},
		{name: "slow_reporter_canceled", reporter: slowReporter{delay: 5 * time.Millisecond}, cancel: 10 * time.Millisecond},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			if tc.cancel > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tc.cancel)
				defer cancel()
			}
			// More iterations than the progress buffer holds.
			opts := harness.Options{Batch: 4, Iterations: 3 * harness.ProgressBufferMultiplier, Seed: 5}
			refs := []backend.Kernels{oracle.Big{}}

			done := make(chan struct{})
			go func() {
				defer close(done)
				harness.Verify(ctx, opts, backend.Fast{}, refs, nil, tc.reporter, io.Discard)
				harness.Bench(ctx, opts, refs, nil, memory.GCModeAuto, tc.reporter, io.Discard)
			}()

			select {
			case <-done:
			case <-time.After(30 * time.Second):
				t.Fatal("harness did not return")
			}
		})
	}
}
