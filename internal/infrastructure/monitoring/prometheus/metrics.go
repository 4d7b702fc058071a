// Package prometheus registers and exposes the engine's metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all engine metrics.  One instance per process; pass it down
// instead of using package globals so tests can register freely.
type Metrics struct {
	registry *prometheus.Registry

	// Extraction pipeline
	ExtractionsTotal   *prometheus.CounterVec // jurisdiction, status
	ExtractionDuration *prometheus.HistogramVec

	// Field validation
	ValidationRejectsTotal *prometheus.CounterVec // field kind

	// Registrar reconciliation
	RegistrarLookupsTotal   *prometheus.CounterVec // source, outcome
	RegistrarLookupDuration prometheus.Histogram

	// Lookup cache
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

var extractionDurationBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// NewMetrics registers all metrics on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := func(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
		vec := prometheus.NewCounterVec(opts, labels)
		registry.MustRegister(vec)
		return vec
	}

	m := &Metrics{
		registry: registry,
		ExtractionsTotal: factory(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Completed extractions by jurisdiction and status.",
		}, []string{"jurisdiction", "status"}),
		ValidationRejectsTotal: factory(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejects_total",
			Help:      "Candidate values dropped by field validators, by field kind.",
		}, []string{"field"}),
		RegistrarLookupsTotal: factory(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrar_lookups_total",
			Help:      "Registrar source lookups by source and outcome.",
		}, []string{"source", "outcome"}),
	}

	m.ExtractionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "extraction_duration_seconds",
		Help:      "Wall time of one full extraction pipeline run.",
		Buckets:   extractionDurationBuckets,
	}, []string{"jurisdiction"})
	registry.MustRegister(m.ExtractionDuration)

	m.RegistrarLookupDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "registrar_lookup_duration_seconds",
		Help:      "Wall time of one merged registrar lookup.",
		Buckets:   prometheus.DefBuckets,
	})
	registry.MustRegister(m.RegistrarLookupDuration)

	m.CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "cache_hits_total",
		Help: "Registrar cache hits.",
	})
	m.CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "cache_misses_total",
		Help: "Registrar cache misses.",
	})
	registry.MustRegister(m.CacheHitsTotal, m.CacheMissesTotal)

	return m
}

// ObserveExtraction records one pipeline run.
func (m *Metrics) ObserveExtraction(jurisdiction, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(jurisdiction, status).Inc()
	m.ExtractionDuration.WithLabelValues(jurisdiction).Observe(elapsed.Seconds())
}

// ObserveRegistrarLookup records one source lookup outcome.
func (m *Metrics) ObserveRegistrarLookup(source, outcome string) {
	if m == nil {
		return
	}
	m.RegistrarLookupsTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveValidationReject records a dropped candidate.
func (m *Metrics) ObserveValidationReject(field string) {
	if m == nil {
		return
	}
	m.ValidationRejectsTotal.WithLabelValues(field).Inc()
}

// ObserveCacheHit records a registrar-cache hit.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// ObserveCacheMiss records a registrar-cache miss.
func (m *Metrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
