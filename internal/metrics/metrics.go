// Package metrics exposes Prometheus collectors for match runs and imports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/invoicematch/internal/matching"
)

// Collector contains all metrics for the match service.
// A nil *Collector is valid and records nothing.
type Collector struct {
	MatchRunsTotal       prometheus.Counter
	MatchResultsTotal    *prometheus.CounterVec
	MatchDuration        prometheus.Histogram
	RecordsImportedTotal *prometheus.CounterVec
	ReviewDecisionsTotal *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		MatchRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "invoicematch_match_runs_total",
			Help: "The total number of match computations",
		}),
		MatchResultsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicematch_match_results_total",
			Help: "The total number of invoice match results by status",
		}, []string{"status"}),
		MatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoicematch_match_duration_seconds",
			Help:    "Time spent computing matches for one request",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		RecordsImportedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicematch_records_imported_total",
			Help: "The total number of imported records by kind",
		}, []string{"kind"}),
		ReviewDecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicematch_review_decisions_total",
			Help: "The total number of recorded review decisions by decision",
		}, []string{"decision"}),
	}
}

// ObserveMatchRun records one ComputeMatches call.
func (c *Collector) ObserveMatchRun(results []matching.MatchResult, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.MatchRunsTotal.Inc()
	c.MatchDuration.Observe(elapsed.Seconds())
	for _, r := range results {
		c.MatchResultsTotal.WithLabelValues(string(r.Status)).Inc()
	}
}

// RecordsImported adds n imported records of the given kind ("invoice" or "entry").
func (c *Collector) RecordsImported(kind string, n int) {
	if c == nil {
		return
	}
	c.RecordsImportedTotal.WithLabelValues(kind).Add(float64(n))
}

// DecisionsRecorded adds n review decisions.
func (c *Collector) DecisionsRecorded(decision string, n int) {
	if c == nil {
		return
	}
	c.ReviewDecisionsTotal.WithLabelValues(decision).Add(float64(n))
}
