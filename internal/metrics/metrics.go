// Package metrics provides Prometheus metrics for the scan pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScanMetrics collects and exposes scan-pipeline Prometheus metrics. All
// metrics live on a private registry so tests can create isolated instances.
type ScanMetrics struct {
	registry *prometheus.Registry

	CyclesTotal       *prometheus.CounterVec
	CycleDuration     prometheus.Histogram
	ContractsFetched  *prometheus.CounterVec
	ContractsSkipped  *prometheus.CounterVec
	PairsMatched      prometheus.Gauge
	AmbiguousGroups   prometheus.Gauge
	OpportunitiesSeen *prometheus.CounterVec
	AlertsSent        prometheus.Counter
	AlertsSuppressed  prometheus.Counter
	VenueUnavailable  *prometheus.CounterVec
}

// NewScanMetrics creates a metrics collector on a fresh registry.
func NewScanMetrics() *ScanMetrics {
	m := &ScanMetrics{
		registry: prometheus.NewRegistry(),

		CyclesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadarb_cycles_total",
				Help: "Total number of scan cycles by outcome",
			},
			[]string{"status"},
		),
		CycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spreadarb_cycle_duration_seconds",
				Help:    "Wall time of one full scan cycle",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~200s
			},
		),
		ContractsFetched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadarb_contracts_fetched_total",
				Help: "Contracts fetched per venue after normalization",
			},
			[]string{"venue"},
		),
		ContractsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadarb_contracts_skipped_total",
				Help: "Contracts excluded from matching, by reason",
			},
			[]string{"venue", "reason"},
		),
		PairsMatched: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spreadarb_pairs_matched",
				Help: "Cross-venue pairs matched in the latest cycle",
			},
		),
		AmbiguousGroups: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spreadarb_ambiguous_groups",
				Help: "Match groups excluded as ambiguous in the latest cycle",
			},
		),
		OpportunitiesSeen: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadarb_opportunities_total",
				Help: "Arbitrage opportunities detected, by direction",
			},
			[]string{"direction"},
		),
		AlertsSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spreadarb_alerts_sent_total",
				Help: "Opportunity alerts delivered to notifiers",
			},
		),
		AlertsSuppressed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spreadarb_alerts_suppressed_total",
				Help: "Opportunity alerts suppressed by the cooldown window",
			},
		),
		VenueUnavailable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadarb_venue_unavailable_total",
				Help: "Cycles in which a venue listing could not be fetched",
			},
			[]string{"venue"},
		),
	}

	m.registry.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.ContractsFetched,
		m.ContractsSkipped,
		m.PairsMatched,
		m.AmbiguousGroups,
		m.OpportunitiesSeen,
		m.AlertsSent,
		m.AlertsSuppressed,
		m.VenueUnavailable,
	)
	return m
}

// Registry returns the underlying registry.
func (m *ScanMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *ScanMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
