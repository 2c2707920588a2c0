//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package harness

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/sysmon"
)

// ProgressUpdate reports the completion fraction of one task.
type ProgressUpdate struct {
	// TaskIndex identifies the task among those announced to the reporter.
	TaskIndex int
	// Value is the completion fraction, 0.0 to 1.0.
	Value float64
}

// ProgressReporter displays progress updates until the channel is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Quiet mode and tests use it.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// Presenter renders harness results.
type Presenter interface {
	PresentVerify(results []VerifyResult, out io.Writer)
	PresentBench(results []BenchResult, host sysmon.HostInfo, out io.Writer)
}

// Recorder receives kernel measurements. *metrics.Metrics implements it.
type Recorder interface {
	ObserveBatch(op, backend string, elements int, d time.Duration)
	RecordMismatch(op, backend string)
	SetNsPerElement(op, backend string, ns float64)
	IncActiveRuns()
	DecActiveRuns()
}

type nopRecorder struct{}

func (nopRecorder) ObserveBatch(string, string, int, time.Duration) {}
func (nopRecorder) RecordMismatch(string, string)                   {}
func (nopRecorder) SetNsPerElement(string, string, float64)         {}
func (nopRecorder) IncActiveRuns()                                  {}
func (nopRecorder) DecActiveRuns()                                  {}

// Check names the property a VerifyResult covers.
type Check string

const (
	// CheckOracle compares every layout of a kernel with a reference.
	CheckOracle Check = "oracle"
	// CheckAllocs asserts that a batched call performs no heap allocation.
	CheckAllocs Check = "allocs"
)

// VerifyResult is the outcome of one verification task.
type VerifyResult struct {
	Op    backend.Op
	Check Check
	// Reference is the backend compared against. Empty for CheckAllocs.
	Reference string
	// Batches and Elements count what was compared before the task ended.
	Batches  int
	Elements int
	Duration time.Duration
	Err      error
}

// BenchResult is the timing of one kernel on one backend.
type BenchResult struct {
	Op           backend.Op
	Backend      string
	Batch        int
	Iterations   int
	NsPerElement float64
	// AllocsPerCall and BytesPerCall average heap activity per batched call.
	AllocsPerCall float64
	BytesPerCall  float64
	// GCs counts collections during the timed loop.
	GCs      uint32
	Duration time.Duration
	Err      error
}
