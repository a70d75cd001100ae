package reports

import (
	"rx-analytics/internal/shared/metrics"
)

var (
	metricQueryDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "query_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"report", metrics.FieldErrorCode},
	)

	metricEventsIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "events_ingested_total",
		},
		[]string{"report", metrics.FieldErrorCode},
	)

	metricCascadeResetsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "cascade_resets_total",
		},
		[]string{"report", "field"},
	)
)
