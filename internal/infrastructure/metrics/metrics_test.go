package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.Mutations == nil || m.HTTPRequests == nil || m.MalformedAmounts == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordMutation("receipt", "create")

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()

	New(registry)
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordMutation("client", "delete")
	m.RecordMutation("client", "delete")
	m.RecordMalformedAmounts(3)
	m.ObserveStatement(12, 20*time.Millisecond)

	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("client", "delete")); got != 2 {
		t.Fatalf("expected 2 client deletes, got %v", got)
	}

	if got := testutil.ToFloat64(m.MalformedAmounts); got != 3 {
		t.Fatalf("expected 3 malformed amounts, got %v", got)
	}

	if got := testutil.CollectAndCount(m.StatementDuration); got != 1 {
		t.Fatalf("expected one statement duration series, got %d", got)
	}
}

func TestHTTPObservation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.HTTPStarted()
	if got := testutil.ToFloat64(m.HTTPInFlight); got != 1 {
		t.Fatalf("expected one request in flight, got %v", got)
	}

	m.ObserveHTTP("GET", "/api/clients/{id}", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPInFlight); got != 0 {
		t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
	}

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/clients/{id}", "404")); got != 1 {
		t.Fatalf("expected request counter to be 1, got %v", got)
	}
}
