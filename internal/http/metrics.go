package http

import (
	"rx-analytics/internal/shared/metrics"
)

var (
	httpLabels = []string{"method", "path", "status", metrics.FieldErrorCode}

	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
		},
		httpLabels,
	)

	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		httpLabels,
	)

	// exports and large report pages dominate this
	metricHTTPResponseSize = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "response_size_bytes",
			Buckets:   metrics.ExponentialBuckets(256, 4, 8),
		},
		[]string{"method", "path"},
	)
)
