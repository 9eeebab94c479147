// Package metrics provides the centralized Prometheus registry for the
// decision engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysisCyclesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "analysis_cycles_total",
		Help:      "Total number of analysis cycles by status",
	}, []string{"status"})
	FixturesAnalyzedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "fixtures_analyzed_total",
		Help:      "Total number of fixtures analyzed by league",
	}, []string{"league"})
	FixturesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "fixtures_skipped_total",
		Help:      "Total number of fixtures skipped by reason",
	}, []string{"reason"})
	DecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "decisions_total",
		Help:      "Total number of emitted decisions by market",
	}, []string{"market"})
	RejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "rejections_total",
		Help:      "Total number of rejected candidates by reason",
	}, []string{"reason"})
	SettlementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "settlements_total",
		Help:      "Total number of settled ledger entries by outcome",
	}, []string{"outcome"})
	FeedErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goleador",
		Name:      "feed_errors_total",
		Help:      "Total number of feed failures by league",
	}, []string{"league"})
)

// Gauge metrics
var (
	CumulativeProfit = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "goleador",
		Name:      "cumulative_profit",
		Help:      "Cumulative realized profit in stake units",
	})
	CumulativeROI = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "goleador",
		Name:      "cumulative_roi_percent",
		Help:      "Cumulative return on investment in percent",
	})
	PendingEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "goleador",
		Name:      "pending_entries",
		Help:      "Number of unsettled ledger entries",
	})
	RegistryTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "goleador",
		Name:      "registry_teams",
		Help:      "Number of teams in the cross-league rating registry",
	})
)

// Histogram metrics
var (
	CycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "goleador",
		Name:      "analysis_cycle_duration_seconds",
		Help:      "Duration of complete analysis cycles in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "goleador",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of one fixture's Monte Carlo simulation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	StakeSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "goleador",
		Name:      "stake_size_percent",
		Help:      "Recommended stake sizes as percent of bankroll",
		Buckets:   []float64{0.25, 0.5, 1, 1.5, 2, 3, 4, 5},
	})
)

// InitRegistry initializes the global Prometheus registry with all metrics.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysisCyclesTotal)
		registry.MustRegister(FixturesAnalyzedTotal)
		registry.MustRegister(FixturesSkippedTotal)
		registry.MustRegister(DecisionsTotal)
		registry.MustRegister(RejectionsTotal)
		registry.MustRegister(SettlementsTotal)
		registry.MustRegister(FeedErrorsTotal)

		registry.MustRegister(CumulativeProfit)
		registry.MustRegister(CumulativeROI)
		registry.MustRegister(PendingEntries)
		registry.MustRegister(RegistryTeams)

		registry.MustRegister(CycleDuration)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(StakeSize)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCycle records a completed analysis cycle.
func RecordCycle(status string, durationSeconds float64) {
	AnalysisCyclesTotal.WithLabelValues(status).Inc()
	CycleDuration.Observe(durationSeconds)
}

// RecordFixtureAnalyzed records one analyzed fixture.
func RecordFixtureAnalyzed(league string) {
	FixturesAnalyzedTotal.WithLabelValues(league).Inc()
}

// RecordFixtureSkipped records a fixture skipped for the given reason.
func RecordFixtureSkipped(reason string) {
	FixturesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordDecision records an emitted decision and its stake size.
func RecordDecision(market string, stakePct float64) {
	DecisionsTotal.WithLabelValues(market).Inc()
	StakeSize.Observe(stakePct)
}

// RecordRejection records a rejected candidate.
func RecordRejection(reason string) {
	RejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordSettlement records a settled ledger entry.
func RecordSettlement(outcome string) {
	SettlementsTotal.WithLabelValues(outcome).Inc()
}

// RecordFeedError records a feed failure for a league.
func RecordFeedError(league string) {
	FeedErrorsTotal.WithLabelValues(league).Inc()
}

// UpdatePnL updates the cumulative profit and ROI gauges.
func UpdatePnL(profit, roi float64) {
	CumulativeProfit.Set(profit)
	CumulativeROI.Set(roi)
}

// UpdatePending updates the pending-entries gauge.
func UpdatePending(count float64) {
	PendingEntries.Set(count)
}

// UpdateRegistrySize updates the registry team-count gauge.
func UpdateRegistrySize(count float64) {
	RegistryTeams.Set(count)
}
