package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EntriesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chesttrack_entries_processed_total",
			Help: "Total number of entries run through the corrector",
		},
	)

	CorrectionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesttrack_corrections_applied_total",
			Help: "Total number of rule firings that changed a field value",
		},
		[]string{"rule_type"},
	)

	ValidationChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesttrack_validation_checks_total",
			Help: "Total number of validation list membership checks",
		},
		[]string{"result"},
	)

	FilterApplications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesttrack_filter_applications_total",
			Help: "Total number of active filter applications in the pipeline",
		},
		[]string{"filter_id"},
	)

	FilterFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesttrack_filter_failures_total",
			Help: "Total number of filter applications isolated after a failure",
		},
		[]string{"filter_id"},
	)
)

// Validation check result labels.
const (
	ResultValid   = "valid"
	ResultFuzzy   = "fuzzy"
	ResultInvalid = "invalid"
)
