package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fasteint/internal/logging"
)

// Metrics holds the Prometheus instruments for kernel runs. Each instance
// owns its registry so tests and the CLI can create several without
// colliding on registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	elementsTotal   *prometheus.CounterVec
	batchDuration   *prometheus.HistogramVec
	mismatchesTotal *prometheus.CounterVec
	nsPerElement    *prometheus.GaugeVec
	activeRuns      prometheus.Gauge
}

// NewMetrics creates and registers every instrument plus the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		elementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eint_elements_total",
			Help: "Elements processed, by kernel and backend.",
		}, []string{"op", "backend"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eint_batch_duration_seconds",
			Help:    "Wall time of one batched kernel call.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"op", "backend"}),
		mismatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eint_mismatches_total",
			Help: "Batches whose result differed from a reference backend.",
		}, []string{"op", "backend"}),
		nsPerElement: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eint_ns_per_element",
			Help: "Most recent benchmark cost per element in nanoseconds.",
		}, []string{"op", "backend"}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eint_active_runs",
			Help: "Verification or benchmark runs in progress.",
		}),
	}
	reg.MustRegister(
		m.elementsTotal,
		m.batchDuration,
		m.mismatchesTotal,
		m.nsPerElement,
		m.activeRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// ObserveBatch records one batched call.
func (m *Metrics) ObserveBatch(op, backend string, elements int, d time.Duration) {
	m.elementsTotal.WithLabelValues(op, backend).Add(float64(elements))
	m.batchDuration.WithLabelValues(op, backend).Observe(d.Seconds())
}

// RecordMismatch counts a batch that disagreed with a reference.
func (m *Metrics) RecordMismatch(op, backend string) {
	m.mismatchesTotal.WithLabelValues(op, backend).Inc()
}

// SetNsPerElement publishes a benchmark result.
func (m *Metrics) SetNsPerElement(op, backend string, ns float64) {
	m.nsPerElement.WithLabelValues(op, backend).Set(ns)
}

// IncActiveRuns marks the start of a run.
func (m *Metrics) IncActiveRuns() { m.activeRuns.Inc() }

// DecActiveRuns marks the end of a run.
func (m *Metrics) DecActiveRuns() { m.activeRuns.Dec() }

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WritePrometheus serves the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Serve exposes /metrics on addr until ctx is canceled, then shuts the
// server down gracefully.
func (m *Metrics) Serve(ctx context.Context, addr string, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
