package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/fasteint/internal/logging"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}
	// Independent registries must not collide.
	_ = NewMetrics()
}

func TestMetrics_ObserveBatch(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveBatch("wrapping_add_512", "fast", 128, 3*time.Microsecond)
	m.ObserveBatch("wrapping_add_512", "fast", 64, time.Microsecond)

	got := testutil.ToFloat64(m.elementsTotal.WithLabelValues("wrapping_add_512", "fast"))
	if got != 192 {
		t.Errorf("elements counter = %v, want 192", got)
	}
}

func TestMetrics_RecordMismatch(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.RecordMismatch("wrapping_sub_256", "big")
	if got := testutil.ToFloat64(m.mismatchesTotal.WithLabelValues("wrapping_sub_256", "big")); got != 1 {
		t.Errorf("mismatch counter = %v, want 1", got)
	}
}

func TestMetrics_ActiveRuns(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.IncActiveRuns()
	m.IncActiveRuns()
	m.DecActiveRuns()
	if got := testutil.ToFloat64(m.activeRuns); got != 1 {
		t.Errorf("active runs = %v, want 1", got)
	}
}

func TestMetrics_WritePrometheus(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveBatch("narrowing_right_shift_512", "c", 16, time.Microsecond)
	m.SetNsPerElement("narrowing_right_shift_512", "c", 2.5)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		"eint_elements_total",
		"eint_batch_duration_seconds",
		"eint_ns_per_element",
		"eint_active_runs",
		"go_",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %s", want)
		}
	}
}

func TestMetrics_ServeStopsOnCancel(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, "127.0.0.1:0", logging.NewNopLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
