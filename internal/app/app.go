package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/calibration"
	"github.com/agbru/fasteint/internal/config"
	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/logging"
	"github.com/agbru/fasteint/internal/metrics"
	"github.com/agbru/fasteint/internal/ui"
)

// Application represents the fasteint application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *backend.Registry
	ErrWriter io.Writer

	logger  logging.Logger
	metrics *metrics.Metrics
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom backend registry for the application.
func WithRegistry(r *backend.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// New creates a new Application instance by parsing command-line arguments.
// The parallel threshold, when not given, comes from a cached calibration
// profile or else from the hardware estimate.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = backend.NewDefaultRegistry()
	}

	programName := "fasteint"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	if _, err := app.Registry.Select(cfg.Backends); err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if err := logging.SetLevel(a.Config.LogLevel); err != nil {
		return apperrors.HandleError(apperrors.NewConfigError("%v", err), a.Config.Timeout, a.ErrWriter)
	}
	a.logger = logging.NewConsoleLogger(a.ErrWriter, a.Config.NoColor).Named("fasteint")
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.MetricsAddr != "" {
		a.metrics = metrics.NewMetrics()
		serveCtx, stopServing := context.WithCancel(ctx)
		defer stopServing()
		go func() {
			if err := a.metrics.Serve(serveCtx, a.Config.MetricsAddr, a.logger.Named("metrics")); err != nil {
				a.logger.Error("metrics endpoint failed", err, logging.String("addr", a.Config.MetricsAddr))
			}
		}()
	}

	switch a.Config.Mode {
	case config.ModeCalibrate:
		return a.runCalibration(ctx, out)
	case config.ModeInfo:
		return a.runInfo(ctx, out)
	case config.ModeBench:
		return a.runBench(ctx, out)
	default:
		return a.runVerify(ctx, out)
	}
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	cfg, err := calibration.RunCalibration(ctx, a.Config, out, a.logger.Named("calibration"))
	if err != nil {
		return apperrors.HandleError(err, a.Config.Timeout, a.ErrWriter)
	}
	a.Config = cfg
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ReportStartupError prints a parse failure other than --help.
func ReportStartupError(err error, w io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		return apperrors.HandleError(err, 0, w)
	}
	// flag has already printed the message and usage.
	return apperrors.ExitErrorConfig
}
