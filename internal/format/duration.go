package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration shows microseconds below a millisecond,
// milliseconds below a second, and the default representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatNsPerElement renders a per-element cost with two decimals.
func FormatNsPerElement(ns float64) string {
	return fmt.Sprintf("%.2f ns/elem", ns)
}

// FormatRate renders elements per second with an SI suffix.
func FormatRate(elements int64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	rate := float64(elements) / d.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2f G/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2f M/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2f k/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f /s", rate)
	}
}

// FormatBytes renders a byte count in binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
