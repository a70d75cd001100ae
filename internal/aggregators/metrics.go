package aggregators

import (
	"rx-analytics/internal/shared/metrics"
)

// metricEventsAccumulatedTotal counts live events folded into a report's tallies. Tables rebuilt
// from stored events for a query are not counted.
//
// metricEventsRejectedTotal counts live events refused by aggregation, labelled by reason:
//   - invalid_duration: negative, NaN or infinite minutes (never clamped into a bucket)
//   - invalid_payload: a negative secondary payload such as sale_value
//   - shape_mismatch: a vector of the wrong shape, which indicates a wiring bug
var (
	metricEventsAccumulatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "events_accumulated_total",
		},
		[]string{"report"},
	)

	metricEventsRejectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "events_rejected_total",
		},
		[]string{"report", "reason"},
	)
)
