package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/cli"
	"github.com/agbru/fasteint/internal/eint"
	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/harness"
	"github.com/agbru/fasteint/internal/memory"
	"github.com/agbru/fasteint/internal/metrics"
	"github.com/agbru/fasteint/internal/sysmon"
)

// harnessOptions builds the harness options shared by verify and bench.
func (a *Application) harnessOptions() (harness.Options, backend.Selection, error) {
	ops, err := backend.ParseOps(a.Config.Ops)
	if err != nil {
		return harness.Options{}, backend.Selection{}, apperrors.NewConfigError("%v", err)
	}
	sel, err := a.Registry.Select(a.Config.Backends)
	if err != nil {
		return harness.Options{}, backend.Selection{}, apperrors.NewConfigError("%v", err)
	}
	opts := harness.Options{
		Ops:        ops,
		Batch:      a.Config.BatchSize,
		Iterations: a.Config.Iterations,
		Seed:       a.Config.Seed,
		Shift:      uint32(a.Config.Shift),
		Threshold:  a.Config.Threshold,
		Workers:    a.Config.Workers,
		Logger:     a.logger.Named("harness"),
	}
	if a.metrics != nil {
		opts.Recorder = a.metrics
	}
	return opts, sel, nil
}

// progress picks the reporter and its writer for the quiet setting.
func (a *Application) progress(out io.Writer) (harness.ProgressReporter, io.Writer) {
	if a.Config.Quiet {
		return harness.NullProgressReporter{}, io.Discard
	}
	return cli.CLIProgressReporter{}, out
}

// runVerify checks the fast backend against every selected reference.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	opts, sel, err := a.harnessOptions()
	if err != nil {
		return apperrors.HandleError(err, a.Config.Timeout, a.ErrWriter)
	}
	fast, err := a.Registry.Kernels(backend.Fast{}.Name())
	if err != nil {
		return apperrors.HandleError(err, a.Config.Timeout, a.ErrWriter)
	}
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(opts.Ops, sel, out)
	}

	reporter, progressOut := a.progress(out)
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := harness.Verify(ctx, opts, fast, sel.Kernels, sel.Shifters, reporter, progressOut)
	presenter := cli.CLIPresenter{Verbose: a.Config.Verbose}
	code := harness.AnalyzeVerifyResults(results, presenter, out)
	if a.Config.Verbose {
		a.displayMemory(before, collector.Snapshot(), out)
	}
	return code
}

// runBench times every selected kernel on every selected backend.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	opts, sel, err := a.harnessOptions()
	if err != nil {
		return apperrors.HandleError(err, a.Config.Timeout, a.ErrWriter)
	}
	gc, err := memory.ParseGCMode(a.Config.GCMode)
	if err != nil {
		return apperrors.HandleError(apperrors.NewConfigError("%v", err), a.Config.Timeout, a.ErrWriter)
	}
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(opts.Ops, sel, out)
	}

	reporter, progressOut := a.progress(out)
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := harness.Bench(ctx, opts, sel.Kernels, sel.Shifters, gc, reporter, progressOut)
	presenter := cli.CLIPresenter{Verbose: a.Config.Verbose}
	presenter.PresentBench(results, sysmon.Host(ctx), out)
	if a.Config.Verbose {
		a.displayMemory(before, collector.Snapshot(), out)
	}

	for _, r := range results {
		if r.Err != nil {
			return presenter.HandleError(benchError(r, a.Config.Timeout), a.Config.Timeout, a.ErrWriter)
		}
	}
	return apperrors.ExitSuccess
}

// benchError names the kernel and backend a failed bench point ran on.
func benchError(r harness.BenchResult, limit time.Duration) error {
	if errors.Is(r.Err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "bench " + string(r.Op) + " on " + r.Backend, Limit: limit}
	}
	return apperrors.WrapError(r.Err, "bench %s on %s", r.Op, r.Backend)
}

// runInfo describes the host and the registered backends.
func (a *Application) runInfo(ctx context.Context, out io.Writer) int {
	cli.PrintInfo(sysmon.Host(ctx), eint.GetCPUFeatures(), a.Registry, out)
	return apperrors.ExitSuccess
}

func (a *Application) displayMemory(before, after metrics.MemorySnapshot, out io.Writer) {
	delta := metrics.Delta(before, after)
	cli.DisplayMemoryStats(after.HeapAlloc, delta.Bytes, delta.GCs, after.PauseTotalNs-before.PauseTotalNs, out)
}
