// Package metrics declares the Prometheus collectors published by the
// maintenance tool. Collectors are registered with the default registry via
// promauto so they show up on the admin /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authmaint_task_runs_total",
			Help: "Total number of maintenance task runs by outcome",
		},
		[]string{"task", "status"},
	)

	RowsExaminedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authmaint_rows_examined_total",
			Help: "Total number of rows examined by maintenance tasks",
		},
		[]string{"task"},
	)

	RowsChangedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authmaint_rows_changed_total",
			Help: "Total number of rows updated or deleted by maintenance tasks",
		},
		[]string{"task"},
	)

	TaskDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authmaint_task_duration_seconds",
			Help:    "Duration of maintenance task runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task"},
	)

	ArchivedObjectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "authmaint_archived_objects_total",
			Help: "Total number of archive objects written before deletion",
		},
	)
)

// ObserveRun records the standard per-run collectors in one place.
func ObserveRun(task, status string, examined, changed int64, seconds float64) {
	TaskRunsTotal.WithLabelValues(task, status).Inc()
	RowsExaminedTotal.WithLabelValues(task).Add(float64(examined))
	RowsChangedTotal.WithLabelValues(task).Add(float64(changed))
	TaskDurationSeconds.WithLabelValues(task).Observe(seconds)
}
