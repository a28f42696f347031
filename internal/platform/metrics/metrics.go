// Package metrics holds the Prometheus instruments for the reconciliation
// pipeline. Components treat a nil *Metrics as "metrics disabled" so unit
// tests can construct them without touching the global registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	TicksTotal        prometheus.Counter
	ReconcileOutcomes *prometheus.CounterVec
	RegionTransitions *prometheus.CounterVec
	RemoteMutations   *prometheus.CounterVec
	ProviderLatency   *prometheus.HistogramVec
	TickDuration      prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
// Call once per process.
func New() *Metrics {
	return &Metrics{
		TicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aerodns_ticks_total",
			Help: "Total number of reconciliation ticks executed",
		}),
		ReconcileOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aerodns_reconcile_outcomes_total",
			Help: "Per-aircraft reconcile outcomes by kind (noop, first_seen, moved, unchanged, over_water, error)",
		}, []string{"outcome"}),
		RegionTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aerodns_region_transitions_total",
			Help: "Region transitions applied, labeled by origin and destination region",
		}, []string{"from", "to"}),
		RemoteMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aerodns_remote_mutations_total",
			Help: "Remote list store partial updates by operation and status",
		}, []string{"op", "status"}),
		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aerodns_provider_request_duration_seconds",
			Help:    "Latency of outbound provider requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		TickDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aerodns_tick_duration_seconds",
			Help:    "Wall time of a full fleet reconciliation tick",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncReconcileOutcome records one per-aircraft reconcile outcome.
func (m *Metrics) IncReconcileOutcome(outcome string) {
	if m == nil {
		return
	}
	m.ReconcileOutcomes.WithLabelValues(outcome).Inc()
}

// IncRegionTransition records an applied region move.
func (m *Metrics) IncRegionTransition(from, to string) {
	if m == nil {
		return
	}
	m.RegionTransitions.WithLabelValues(from, to).Inc()
}

// IncRemoteMutation records the outcome of one remote partial update.
func (m *Metrics) IncRemoteMutation(op, status string) {
	if m == nil {
		return
	}
	m.RemoteMutations.WithLabelValues(op, status).Inc()
}

// ObserveProvider records the latency of one provider call.
func (m *Metrics) ObserveProvider(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveTick records a completed tick.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.TicksTotal.Inc()
	m.TickDuration.Observe(d.Seconds())
}
