package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.SessionsCreated == nil || m.TransactionsAdded == nil || m.EventsPublished == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.SessionsCreated.Inc()
	m.SessionsActive.Inc()
	m.TransactionsAdded.WithLabelValues("expense").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.SessionsCreated); got != 1 {
		t.Fatalf("expected sessions created counter to be 1, got %v", got)
	}

	if got := testutil.ToFloat64(m.TransactionsAdded.WithLabelValues("expense")); got != 1 {
		t.Fatalf("expected expense counter to be 1, got %v", got)
	}
}

func TestNewUsesIsolatedRegistries(t *testing.T) {
	first := New(prometheus.NewRegistry())
	second := New(prometheus.NewRegistry())

	first.SessionsActive.Inc()

	if got := testutil.ToFloat64(second.SessionsActive); got != 0 {
		t.Fatalf("expected second registry gauge to stay 0, got %v", got)
	}
}
