package streams

import (
	"rx-analytics/internal/shared/metrics"
)

var (
	streamIngestedEvent              = "ingested_event"
	metricIngestedEventProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "ingested_event_published_total",
		},
		[]string{"stream_id"},
	)

	metricIngestedEventConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "ingested_event_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricIngestedEventQueueDepth = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "ingested_event_queue_depth",
		},
		[]string{"stream_id"},
	)
)
