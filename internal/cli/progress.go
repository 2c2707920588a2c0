package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fasteint/internal/format"
	"github.com/agbru/fasteint/internal/harness"
)

// CLIProgressReporter renders harness progress as a spinner followed by a
// bar and an ETA.
type CLIProgressReporter struct{}

var _ harness.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements harness.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan harness.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}

// DisplayProgress consumes progressChan until it is closed, refreshing the
// spinner suffix every ProgressRefreshRate. It calls wg.Done on return.
// With no tasks it only drains the channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan harness.ProgressUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	agg := harness.NewProgressAggregator(numTasks)
	if agg == nil {
		harness.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(suffix(0, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var latest harness.AggregatedProgress
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(suffix(agg.CalculateAverage(), 0))
				s.Stop()
				fmt.Fprintln(out)
				return
			}
			latest = agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(suffix(latest.AverageProgress, agg.GetETA()))
		}
	}
}

func suffix(progress float64, eta time.Duration) string {
	return " " + format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth)
}
