package simulators

import (
	"rx-analytics/internal/shared/metrics"
)

var (
	metricTicksTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSimulation,
			Name:      "ticks_total",
		},
		[]string{"report", "mode", "status"},
	)

	metricGeneratedEventsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSimulation,
			Name:      "generated_events_total",
		},
		[]string{"report"},
	)

	metricLiveSubscribers = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSimulation,
			Name:      "live_subscribers",
		},
		[]string{"report"},
	)
)
