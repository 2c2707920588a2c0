package harness

import (
	"time"

	"github.com/agbru/fasteint/internal/format"
)

// ProgressBufferMultiplier sizes the progress channel per task so that a
// slow reporter rarely blocks a running task.
const ProgressBufferMultiplier = 5

// ProgressAggregator folds per-task updates into an overall fraction and
// an ETA. Reporters use it to avoid duplicating that bookkeeping.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	numTasks int
}

// NewProgressAggregator returns nil if numTasks <= 0.
func NewProgressAggregator(numTasks int) *ProgressAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numTasks),
		numTasks: numTasks,
	}
}

// AggregatedProgress is the result of folding one update.
type AggregatedProgress struct {
	TaskIndex       int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update folds one update into the aggregate.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.TaskIndex, update.Value)
	return AggregatedProgress{
		TaskIndex:       update.TaskIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current overall fraction without updating.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

// NumTasks returns the number of tasks being tracked.
func (a *ProgressAggregator) NumTasks() int { return a.numTasks }

// DrainChannel discards every update until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
