package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveExtraction(t *testing.T) {
	m := NewMetrics("regintel")
	m.ObserveExtraction("DE", "SUCCESS", 120*time.Millisecond)
	m.ObserveExtraction("DE", "SUCCESS", 80*time.Millisecond)
	m.ObserveExtraction("GB", "NO_DATA", 10*time.Millisecond)

	if got := testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues("DE", "SUCCESS")); got != 2 {
		t.Fatalf("DE/SUCCESS = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues("GB", "NO_DATA")); got != 1 {
		t.Fatalf("GB/NO_DATA = %v, want 1", got)
	}
}

func TestObserveRegistrarLookup(t *testing.T) {
	m := NewMetrics("regintel")
	m.ObserveRegistrarLookup("rdap", "ok")
	m.ObserveRegistrarLookup("whois", "error")

	if got := testutil.ToFloat64(m.RegistrarLookupsTotal.WithLabelValues("rdap", "ok")); got != 1 {
		t.Fatalf("rdap/ok = %v, want 1", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	// Must not panic when metrics are disabled.
	m.ObserveExtraction("DE", "SUCCESS", time.Millisecond)
	m.ObserveRegistrarLookup("rdap", "ok")
	m.ObserveValidationReject("vat")
	m.ObserveCacheHit()
	m.ObserveCacheMiss()
}

func TestObserveCacheCounters(t *testing.T) {
	m := NewMetrics("regintel")
	m.ObserveCacheHit()
	m.ObserveCacheHit()
	m.ObserveCacheMiss()
	if got := testutil.ToFloat64(m.CacheHitsTotal); got != 2 {
		t.Fatalf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CacheMissesTotal); got != 1 {
		t.Fatalf("misses = %v, want 1", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	m := NewMetrics("regintel")
	if m.Handler() == nil {
		t.Fatal("nil handler")
	}
	if m.Registry() == nil {
		t.Fatal("nil registry")
	}
}
