package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	movePlanner = "move_planner"

	// Estimate metrics
	estimatesTotal         = "estimates_total"
	estimateFailuresTotal  = "estimate_failures_total"
	truckRecommendations   = "truck_recommendations_total"
	estimatedVolumeCubicFt = "estimated_volume_cubic_feet"

	// Snapshot metrics
	snapshotRestoresTotal = "snapshot_restores_total"

	// Report metrics
	reportsRenderedTotal = "reports_rendered_total"

	// Labels
	tableVersionLabel = "table_version"
	planLabel         = "plan"
	truckClassLabel   = "truck_class"
	outcomeLabel      = "outcome"
	formatLabel       = "format"
)

// Snapshot restore outcomes.
const (
	RestoreOK       = "ok"
	RestoreFallback = "fallback"
)

/**
* Metrics definition
**/
var estimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: movePlanner,
		Name:      estimatesTotal,
		Help:      "number of estimates computed",
	},
	[]string{tableVersionLabel, planLabel},
)

var estimateFailuresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: movePlanner,
		Name:      estimateFailuresTotal,
		Help:      "number of estimates rejected because of a configuration error",
	},
	[]string{tableVersionLabel},
)

var truckRecommendationsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: movePlanner,
		Name:      truckRecommendations,
		Help:      "number of times each truck class was recommended",
	},
	[]string{truckClassLabel},
)

var estimatedVolumeMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: movePlanner,
		Name:      estimatedVolumeCubicFt,
		Help:      "distribution of the estimated total volume",
		Buckets:   []float64{150, 300, 500, 800, 1200, 1800},
	},
)

var snapshotRestoresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: movePlanner,
		Name:      snapshotRestoresTotal,
		Help:      "number of saved snapshots read back, by outcome",
	},
	[]string{outcomeLabel},
)

var reportsRenderedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: movePlanner,
		Name:      reportsRenderedTotal,
		Help:      "number of estimate reports rendered, by format",
	},
	[]string{formatLabel},
)

func IncreaseEstimatesTotalMetric(tableVersion, plan string) {
	estimatesTotalMetric.With(prometheus.Labels{
		tableVersionLabel: tableVersion,
		planLabel:         plan,
	}).Inc()
}

func IncreaseEstimateFailuresTotalMetric(tableVersion string) {
	estimateFailuresTotalMetric.With(prometheus.Labels{tableVersionLabel: tableVersion}).Inc()
}

func IncreaseTruckRecommendationMetric(truckClass string) {
	truckRecommendationsMetric.With(prometheus.Labels{truckClassLabel: truckClass}).Inc()
}

func ObserveEstimatedVolume(volume float64) {
	estimatedVolumeMetric.Observe(volume)
}

func IncreaseSnapshotRestoresMetric(outcome string) {
	snapshotRestoresTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func IncreaseReportsRenderedMetric(format string) {
	reportsRenderedTotalMetric.With(prometheus.Labels{formatLabel: format}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimatesTotalMetric)
	prometheus.MustRegister(estimateFailuresTotalMetric)
	prometheus.MustRegister(truckRecommendationsMetric)
	prometheus.MustRegister(estimatedVolumeMetric)
	prometheus.MustRegister(snapshotRestoresTotalMetric)
	prometheus.MustRegister(reportsRenderedTotalMetric)
}
