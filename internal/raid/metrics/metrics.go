// Package metrics exposes Prometheus metrics for the RAiD subsystem.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"conflux/internal/raid/compatibility"
)

// Metrics holds the RAiD domain metrics.
type Metrics struct {
	ChecksTotal            prometheus.Counter
	IncompatibilitiesTotal *prometheus.CounterVec
	MintsTotal             *prometheus.CounterVec
	SyncsTotal             *prometheus.CounterVec
	RegistryLatency        prometheus.Histogram
}

// New creates and registers all RAiD metrics.
func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conflux_raid_compatibility_checks_total",
			Help: "Total number of compatibility check runs",
		}),
		IncompatibilitiesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conflux_raid_incompatibilities_total",
			Help: "Total incompatibilities reported, by type",
		}, []string{"type"}),
		MintsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conflux_raid_mints_total",
			Help: "Total RAiD mint attempts, by outcome",
		}, []string{"outcome"}),
		SyncsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conflux_raid_syncs_total",
			Help: "Total RAiD sync attempts, by outcome",
		}, []string{"outcome"}),
		RegistryLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "conflux_raid_registry_latency_seconds",
			Help:    "Latency of external registry calls",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveCheck records one check run and its reported incompatibilities.
func (m *Metrics) ObserveCheck(incompatibilities []compatibility.Incompatibility) {
	m.ChecksTotal.Inc()
	for _, inc := range incompatibilities {
		m.IncompatibilitiesTotal.WithLabelValues(string(inc.Type)).Inc()
	}
}

// RecordMint records a mint attempt outcome.
func (m *Metrics) RecordMint(outcome string) {
	m.MintsTotal.WithLabelValues(outcome).Inc()
}

// RecordSync records a sync attempt outcome.
func (m *Metrics) RecordSync(outcome string) {
	m.SyncsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRegistryLatency records the duration of one registry call.
func (m *Metrics) ObserveRegistryLatency(d time.Duration) {
	m.RegistryLatency.Observe(d.Seconds())
}
