// Package calibration times the parallel batch executor across candidate
// thresholds and caches the fastest one per machine.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/agbru/fasteint/internal/arena"
	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/batch"
	"github.com/agbru/fasteint/internal/config"
	"github.com/agbru/fasteint/internal/eint"
	"github.com/agbru/fasteint/internal/logging"
)

// Defaults for a calibration run.
const (
	DefaultBatch  = 1 << 16
	DefaultRounds = 5
)

// Options control a calibration run.
type Options struct {
	// Batch is the number of elements per timed call.
	Batch int
	// Rounds is the number of timed calls per threshold; the fastest counts.
	Rounds int
	// Workers caps executor concurrency. Zero means GOMAXPROCS.
	Workers    int
	Thresholds []int
	Seed       uint64
}

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Result is the outcome of Calibrate.
type Result struct {
	Best    int
	Elapsed time.Duration
	Results []calibrationResult
}

// Calibrate times the widening multiply through a batch executor over k for
// every candidate threshold and returns the fastest. Cancellation stops the
// sweep and returns the context error.
func Calibrate(ctx context.Context, k backend.Kernels, opts Options, logger logging.Logger) (Result, error) {
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatch
	}
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultRounds
	}
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = GenerateParallelThresholds()
	}

	ar := arena.New(opts.Batch * (eint.Size512 + 2*eint.Size256))
	dst := ar.Alloc(eint.Size512, opts.Batch)
	a := ar.Alloc(eint.Size256, opts.Batch)
	b := ar.Alloc(eint.Size256, opts.Batch)
	if err := ar.Fill(rand.NewChaCha8(seedBytes(opts.Seed))); err != nil {
		return Result{}, fmt.Errorf("filling calibration buffer: %w", err)
	}
	buf := ar.Bytes()

	start := time.Now()
	res := Result{Best: -1}
	var bestDur time.Duration
	for _, th := range opts.Thresholds {
		execOpts := []batch.Option{batch.WithThreshold(th), batch.WithLogger(logger.Named("batch"))}
		if opts.Workers > 0 {
			execOpts = append(execOpts, batch.WithWorkers(opts.Workers))
		}
		exec := batch.NewExecutor(k, execOpts...)

		var fastest time.Duration
		var err error
		for r := 0; r < opts.Rounds; r++ {
			t0 := time.Now()
			if err = exec.WideningMul256(ctx, buf, dst.Off, a.Off, b.Off, opts.Batch); err != nil {
				break
			}
			if d := time.Since(t0); r == 0 || d < fastest {
				fastest = d
			}
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		res.Results = append(res.Results, calibrationResult{Threshold: th, Duration: fastest, Err: err})
		logger.Debug("calibration point",
			logging.Int("threshold", th), logging.Duration("fastest", fastest))
		if err == nil && (res.Best < 0 || fastest < bestDur) {
			res.Best, bestDur = th, fastest
		}
	}
	res.Elapsed = time.Since(start)
	if res.Best < 0 {
		return res, fmt.Errorf("calibration failed for every threshold")
	}
	return res, nil
}

// RunCalibration calibrates the fast backend, prints the table to out and
// saves the profile. It returns the configuration updated with the chosen
// threshold.
func RunCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer, logger logging.Logger) (config.AppConfig, error) {
	opts := Options{
		Batch:   max(cfg.BatchSize, DefaultBatch),
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
	}
	fmt.Fprintf(out, "Calibrating parallel threshold on %d elements...\n", opts.Batch)

	res, err := Calibrate(ctx, backend.Fast{}, opts, logger)
	if err != nil {
		return cfg, err
	}
	printCalibrationResults(out, res.Results, res.Best)

	cfg.Threshold = res.Best
	profile := NewProfile()
	profile.OptimalParallelThreshold = res.Best
	if cfg.Workers > 0 {
		profile.Workers = cfg.Workers
	}
	profile.CalibrationBatch = opts.Batch
	profile.CalibrationTime = res.Elapsed.Round(time.Millisecond).String()

	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		logger.Error("could not save calibration profile", err, logging.String("path", path))
	} else {
		logger.Info("calibration profile saved", logging.String("path", path))
	}
	printCalibrationOutput(cfg, out)
	return cfg, nil
}

func seedBytes(seed uint64) [32]byte {
	var s [32]byte
	for i := range 8 {
		s[i] = byte(seed >> (8 * i))
	}
	return s
}
