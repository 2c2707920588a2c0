package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressState tracks the completion fraction of a fixed set of tasks.
// It is not safe for concurrent use; a single reporter goroutine owns it.
type ProgressState struct {
	progresses []float64
	numTasks   int
}

// NewProgressState creates a state for numTasks tasks, all at zero.
func NewProgressState(numTasks int) *ProgressState {
	return &ProgressState{progresses: make([]float64, numTasks), numTasks: numTasks}
}

// Update records the progress of task i, clamped to [0, 1]. Out-of-range
// indices are ignored.
func (ps *ProgressState) Update(i int, value float64) {
	if i < 0 || i >= len(ps.progresses) {
		return
	}
	ps.progresses[i] = min(max(value, 0), 1)
}

// CalculateAverage returns the mean progress over all tasks.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numTasks == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numTasks)
}

// maxETA caps estimates so that a stalled rate never prints absurd values.
const maxETA = 24 * time.Hour

// ProgressWithETA extends ProgressState with a rate estimate.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker for numTasks tasks starting now.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numTasks),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records task progress and returns the overall progress and
// the estimated remaining time.
func (p *ProgressWithETA) UpdateWithETA(i int, value float64) (float64, time.Duration) {
	p.Update(i, value)
	progress := p.CalculateAverage()

	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && progress > 0 {
		rate := progress / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			// Exponential smoothing.
			p.progressRate = 0.7*p.progressRate + 0.3*rate
		}
	}
	return progress, p.GetETA()
}

// GetETA returns the estimated remaining time, or zero when no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an estimate as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		if s := int(eta.Seconds()) % 60; s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		h := int(eta.Hours())
		if m := int(eta.Minutes()) % 60; m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
}

// ProgressBar renders a bar of the given length, clamping progress to [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 1m5s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
