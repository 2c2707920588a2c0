package config

import (
	"errors"
	"flag"
	"io"
	"runtime"
	"testing"
	"time"

	apperrors "github.com/agbru/fasteint/internal/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("fasteint", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Mode != ModeVerify {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeVerify)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.Shift != DefaultShift {
		t.Errorf("Shift = %d, want %d", cfg.Shift, DefaultShift)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Ops != "all" || cfg.Backends != "all" {
		t.Errorf("Ops/Backends = %q/%q, want all/all", cfg.Ops, cfg.Backends)
	}
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{
		"-mode", "bench", "-ops", "wrapping_add_512,borrow_sub_256",
		"-batch", "64", "-iterations", "3", "-seed", "42", "-shift", "600",
		"-threshold", "256", "-workers", "2", "-timeout", "10s", "-q",
	}
	cfg, err := ParseConfig("fasteint", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := AppConfig{
		Mode: ModeBench, Ops: "wrapping_add_512,borrow_sub_256", Backends: "all",
		BatchSize: 64, Iterations: 3, Seed: 42, Shift: 600, Threshold: 256,
		Workers: 2, Timeout: 10 * time.Second, LogLevel: "info", GCMode: "auto",
		Quiet: true,
	}
	if cfg != want {
		t.Errorf("ParseConfig = %+v\nwant %+v", cfg, want)
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := ParseConfig("fasteint", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"-mode", "serve"}},
		{"zero batch", []string{"-batch", "0"}},
		{"negative threshold", []string{"-threshold", "-1"}},
		{"negative workers", []string{"-workers", "-4"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"unknown op", []string{"-ops", "divide_256"}},
		{"unknown gc mode", []string{"-gc", "sometimes"}},
		{"unknown log level", []string{"-log-level", "loud"}},
		{"stray argument", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("fasteint", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("err = %v, want ConfigError", err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EINT_BATCH", "32")
	t.Setenv("EINT_SEED", "0x10")
	t.Setenv("EINT_MODE", "info")
	t.Setenv("EINT_QUIET", "yes")
	t.Setenv("EINT_WORKERS", "not-a-number")

	cfg, err := ParseConfig("fasteint", []string{"-batch", "8"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.BatchSize != 8 {
		t.Errorf("BatchSize = %d, want 8 (flag wins over env)", cfg.BatchSize)
	}
	if cfg.Seed != 16 {
		t.Errorf("Seed = %d, want 16", cfg.Seed)
	}
	if cfg.Mode != ModeInfo {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeInfo)
	}
	if !cfg.Quiet {
		t.Error("Quiet = false, want true")
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 for unparseable env", cfg.Workers)
	}
}

func TestEnvOverrideAliasedFlag(t *testing.T) {
	t.Setenv("EINT_VERBOSE", "false")
	cfg, err := ParseConfig("fasteint", []string{"-v"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want short flag to win over env")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestApplyAdaptiveThresholds(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveThresholds(AppConfig{Threshold: 300})
	if cfg.Threshold != 300 {
		t.Errorf("explicit threshold overwritten: %d", cfg.Threshold)
	}
	cfg = ApplyAdaptiveThresholds(AppConfig{})
	if cfg.Threshold != EstimateOptimalParallelThreshold() {
		t.Errorf("Threshold = %d, want estimate %d", cfg.Threshold, EstimateOptimalParallelThreshold())
	}
	if runtime.NumCPU() > 1 && cfg.Threshold <= 0 {
		t.Errorf("multi-core estimate should enable splitting, got %d", cfg.Threshold)
	}
}
