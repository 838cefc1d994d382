// Package metrics defines and registers all custom Prometheus metrics for
// the document platform. It is the single source of truth for metric names,
// labels, and help strings. Registration happens on import via promauto;
// the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docplatform"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// IngestionsTriggeredTotal counts successfully triggered ingestion requests.
var IngestionsTriggeredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestions_triggered_total",
		Help:      "Total number of ingestion requests created and advanced to InProgress.",
	},
)

// IngestionStatusUpdatesTotal counts status overwrites applied via the API.
// Label:
//   - status: the new status value (e.g. "Completed", "Failed")
var IngestionStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestion_status_updates_total",
		Help:      "Total number of ingestion status updates, by new status.",
	},
	[]string{"status"},
)

// ProcessorSubmissionsTotal counts asynchronous submissions to the external
// processor.
// Label:
//   - result: "ok" or "error"
var ProcessorSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "processor_submissions_total",
		Help:      "Total number of submissions to the external ingestion processor, by result.",
	},
	[]string{"result"},
)
