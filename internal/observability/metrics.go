package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"wanderlust/internal/models/trip_models"
)

var (
	conflictsDetected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wanderlust",
		Subsystem: "timing",
		Name:      "conflicts_detected_total",
		Help:      "Activities found outside their opening hours by validation or auto-fix.",
	})
	repairChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wanderlust",
		Subsystem: "timing",
		Name:      "repair_changes_total",
		Help:      "Changes applied by auto-fix, by kind (shifted, cascaded, removed).",
	}, []string{"kind"})
	unresolvedRepairs = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wanderlust",
		Subsystem: "timing",
		Name:      "unresolved_repairs_total",
		Help:      "Auto-fix runs that ended with conflicts remaining.",
	})
	repairPasses = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wanderlust",
		Subsystem: "timing",
		Name:      "repair_passes",
		Help:      "Scan/repair passes used per auto-fix run.",
		Buckets:   []float64{0, 1, 2, 3, 5, 8},
	})
	hoursLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wanderlust",
		Subsystem: "enrichment",
		Name:      "hours_lookups_total",
		Help:      "Opening-hours lookups by outcome (cache_hit, fetched, not_found, failed).",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(conflictsDetected, repairChanges, unresolvedRepairs, repairPasses, hoursLookups)
}

// RecordValidation counts the conflicts a validation run found.
func RecordValidation(conflicts int) {
	conflictsDetected.Add(float64(conflicts))
}

// RecordRepair records the outcome of one auto-fix run.
func RecordRepair(report trip_models.RepairReport) {
	repairPasses.Observe(float64(report.Passes))
	for _, c := range report.Changes {
		repairChanges.WithLabelValues(string(c.Kind)).Inc()
	}
	if !report.Resolved {
		unresolvedRepairs.Inc()
	}
}

const (
	LookupCacheHit = "cache_hit"
	LookupFetched  = "fetched"
	LookupNotFound = "not_found"
	LookupFailed   = "failed"
)

func RecordHoursLookup(outcome string) {
	hoursLookups.WithLabelValues(outcome).Inc()
}
