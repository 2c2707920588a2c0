// Package config parses command-line flags and environment variables into
// the application configuration.
package config

import (
	"flag"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/fasteint/internal/backend"
	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/memory"
)

// EnvPrefix is prepended to every environment variable the configuration reads.
const EnvPrefix = "EINT_"

// Run modes.
const (
	ModeVerify    = "verify"
	ModeBench     = "bench"
	ModeCalibrate = "calibrate"
	ModeInfo      = "info"
)

// Defaults.
const (
	DefaultBatchSize  = 128
	DefaultIterations = 16
	DefaultShift      = 111
	DefaultTimeout    = 5 * time.Minute
)

// Modes lists every accepted run mode.
var Modes = []string{ModeVerify, ModeBench, ModeCalibrate, ModeInfo}

// AppConfig aggregates all configuration parameters of the application.
type AppConfig struct {
	// Mode selects what the run does: verify, bench, calibrate or info.
	Mode string
	// Ops is a comma-separated kernel list, or "all".
	Ops string
	// Backends is a comma-separated backend list, or "all".
	Backends string
	// BatchSize is the number of elements per batched call.
	BatchSize int
	// Iterations is the number of random batches per kernel in verify mode
	// and the number of timed repetitions in bench mode.
	Iterations int
	// Seed seeds the input generator. Zero picks a seed from the clock.
	Seed uint64
	// Shift is the shift amount used by bench mode.
	Shift uint
	// Threshold is the minimum elements per parallel chunk. Zero means
	// "resolve from profile or hardware".
	Threshold int
	// Workers caps the number of concurrent chunks. Zero means GOMAXPROCS.
	Workers int
	Timeout time.Duration
	// MetricsAddr, when set, exposes Prometheus metrics on that address.
	MetricsAddr        string
	LogLevel           string
	CalibrationProfile string
	GCMode             string
	Verbose            bool
	Quiet              bool
	NoColor            bool
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is CLI flags, then EINT_* environment variables, then defaults.
// Usage and parse errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	fs.StringVar(&cfg.Mode, "mode", ModeVerify, "Run mode: "+strings.Join(Modes, ", ")+".")
	fs.StringVar(&cfg.Ops, "ops", "all", "Comma-separated kernels to run, or 'all'.")
	fs.StringVar(&cfg.Backends, "backends", "all", "Comma-separated backends to run, or 'all'.")
	fs.IntVar(&cfg.BatchSize, "batch", DefaultBatchSize, "Elements per batched call.")
	fs.IntVar(&cfg.Iterations, "iterations", DefaultIterations, "Random batches per kernel (verify) or timed repetitions (bench).")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Input generator seed (0 = from clock).")
	fs.UintVar(&cfg.Shift, "shift", DefaultShift, "Shift amount used by bench mode (taken mod 512).")
	fs.IntVar(&cfg.Threshold, "threshold", 0, "Minimum elements per parallel chunk (0 = calibrated or estimated).")
	fs.IntVar(&cfg.Workers, "workers", 0, "Maximum concurrent chunks (0 = GOMAXPROCS).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile path (default ~/"+defaultProfileName+").")
	fs.StringVar(&cfg.GCMode, "gc", string(memory.GCModeAuto), "GC control during bench: auto, aggressive, disabled.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode: results only, no spinner.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode: results only, no spinner.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unknown mode %q (want one of %s)", c.Mode, strings.Join(Modes, ", "))
	}
	if c.BatchSize <= 0 {
		return apperrors.NewConfigError("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Iterations <= 0 {
		return apperrors.NewConfigError("iterations must be positive, got %d", c.Iterations)
	}
	if c.Threshold < 0 {
		return apperrors.NewConfigError("threshold cannot be negative: %d", c.Threshold)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers cannot be negative: %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Shift > 1<<32-1 {
		return apperrors.NewConfigError("shift %d does not fit in 32 bits", c.Shift)
	}
	if _, err := backend.ParseOps(c.Ops); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := memory.ParseGCMode(c.GCMode); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	return nil
}

const defaultProfileName = ".fasteint_calibration.json"
