// Package metrics carries the Prometheus instrumentation for the analysis
// pipeline. Collectors live on a caller-owned registry; the library never
// opens a port, drivers decide whether to expose anything.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Set bundles the pipeline collectors.
type Set struct {
	Requests  *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	CacheHits prometheus.Counter
	Duration  prometheus.Histogram
}

// New registers the pipeline collectors on the given registry. A nil
// registry yields a Set backed by a private registry, which keeps tests and
// metric-indifferent drivers free of global registration conflicts.
func New(reg prometheus.Registerer) *Set {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Set{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resload_analyze_requests_total",
			Help: "Analysis requests by region.",
		}, []string{"region"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resload_analyze_failures_total",
			Help: "Failed analysis requests by region.",
		}, []string{"region"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resload_analyze_cache_hits_total",
			Help: "Analysis requests served from the memoization cache.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resload_analyze_duration_seconds",
			Help:    "Wall time of one analysis request.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(s.Requests, s.Failures, s.CacheHits, s.Duration)
	return s
}
