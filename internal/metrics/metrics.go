// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_record_mutations_total",
			Help: "Records added or deleted, by entity",
		},
		[]string{"entity", "operation"},
	)

	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_store_errors_total",
			Help: "Failed database operations, by entity",
		},
		[]string{"entity", "operation"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
