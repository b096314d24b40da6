package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the archipelago orchestrator.
// Tracks island counts, evolution requests, faults, migration traffic and
// checkpoint durations.
type Metrics struct {
	Islands           prometheus.Gauge
	EvolveRequests    prometheus.Counter
	FaultsObserved    prometheus.Counter
	MigrantsDeposited prometheus.Counter
	MigrantsExtracted prometheus.Counter
	RestoresTotal     prometheus.Counter
	SaveDuration      prometheus.Histogram
	RestoreDuration   prometheus.Histogram
}

// New creates a Metrics instance registered with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Islands: factory.NewGauge(prometheus.GaugeOpts{
			Name: "archipelago_islands",
			Help: "Number of islands held by the archipelago",
		}),
		EvolveRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "archipelago_evolve_requests_total",
			Help: "Total number of evolve requests fanned out to islands",
		}),
		FaultsObserved: factory.NewCounter(prometheus.CounterOpts{
			Name: "archipelago_faults_observed_total",
			Help: "Total number of island faults surfaced by wait_check",
		}),
		MigrantsDeposited: factory.NewCounter(prometheus.CounterOpts{
			Name: "archipelago_migrants_deposited_total",
			Help: "Total number of individuals deposited into the migration mailbox",
		}),
		MigrantsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Name: "archipelago_migrants_extracted_total",
			Help: "Total number of individuals extracted from the migration mailbox",
		}),
		RestoresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "archipelago_restores_total",
			Help: "Total number of successful snapshot restores",
		}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "archipelago_snapshot_save_duration_seconds",
			Help:    "Duration of snapshot save operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}),
		RestoreDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "archipelago_snapshot_restore_duration_seconds",
			Help:    "Duration of snapshot restore operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}),
	}
}

// SetIslands records the current island count.
func (m *Metrics) SetIslands(n int) {
	m.Islands.Set(float64(n))
}

// IncrementEvolveRequests records one evolve request per island.
func (m *Metrics) IncrementEvolveRequests(islands int) {
	m.EvolveRequests.Add(float64(islands))
}

func (m *Metrics) IncrementFaults() {
	m.FaultsObserved.Inc()
}

// AddDeposited records n individuals entering the mailbox.
func (m *Metrics) AddDeposited(n int) {
	m.MigrantsDeposited.Add(float64(n))
}

// AddExtracted records n individuals leaving the mailbox.
func (m *Metrics) AddExtracted(n int) {
	m.MigrantsExtracted.Add(float64(n))
}

// ObserveSave records the duration of a save.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSave(start time.Time) {
	m.SaveDuration.Observe(time.Since(start).Seconds())
}

// ObserveRestore records the duration of a successful restore.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRestore(start time.Time) {
	m.RestoresTotal.Inc()
	m.RestoreDuration.Observe(time.Since(start).Seconds())
}
