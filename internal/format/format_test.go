package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		d    time.Duration
		want string
	}{
		{500, time.Second, "500 /s"},
		{2500, time.Second, "2.50 k/s"},
		{3_000_000, time.Second, "3.00 M/s"},
		{128, 100 * time.Nanosecond, "1.28 G/s"},
		{1, 0, "n/a"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.n, tt.d); got != tt.want {
			t.Errorf("FormatRate(%d, %v) = %q, want %q", tt.n, tt.d, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{64 * 128, "8.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatNsPerElement(t *testing.T) {
	t.Parallel()
	if got := FormatNsPerElement(3.14159); got != "3.14 ns/elem" {
		t.Errorf("FormatNsPerElement = %q", got)
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"-123", "-123"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	if avg := ps.CalculateAverage(); avg != 0 {
		t.Errorf("initial average = %f, want 0", avg)
	}
	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %f, want 0.75", avg)
	}

	ps.Update(0, 1.5)
	ps.Update(1, -0.5)
	if avg := ps.CalculateAverage(); avg != 0.5 {
		t.Errorf("clamped average = %f, want 0.5", avg)
	}

	ps.Update(7, 1)
	ps.Update(-1, 1)
	if avg := ps.CalculateAverage(); avg != 0.5 {
		t.Errorf("out-of-range update changed average to %f", avg)
	}

	if avg := NewProgressState(0).CalculateAverage(); avg != 0 {
		t.Errorf("zero tasks average = %f, want 0", avg)
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %f, want 0.125", progress)
	}
	if eta < 0 {
		t.Errorf("ETA negative: %v", eta)
	}

	p.progressRate = 0.1
	p.Update(1, 0.75)
	// 50% remaining at 10%/s.
	if eta := p.GetETA(); eta < 4*time.Second || eta > 6*time.Second {
		t.Errorf("ETA = %v, want about 5s", eta)
	}

	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want cap %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour, "1h"},
		{3*time.Hour + 45*time.Minute, "3h45m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 10); got != tt.want {
			t.Errorf("ProgressBar(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}

	line := FormatProgressBarWithETA(0.5, 30*time.Second, 20)
	for _, part := range []string{"[", "]", "50.0%", "ETA: 30s"} {
		if !strings.Contains(line, part) {
			t.Errorf("FormatProgressBarWithETA = %q, missing %q", line, part)
		}
	}
}
