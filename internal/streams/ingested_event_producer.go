package streams

import (
	"context"
	"errors"

	"rx-analytics/internal/events"
)

var ErrMissingReport = errors.New("ingested event has no report")

// IngestedEventProducer publishes accepted events to a partitioned queue, one message per
// consuming report.
//
// The partition key is the report name. Every event for a report lands on the same partition,
// and since the consumer drains each partition with a single worker, a report applies its
// events in the order they were published while different reports are applied in parallel.
//
//go:generate mockgen -source=ingested_event_producer.go -destination=./mocks/ingested_event_producer_mock.go -package=mocks
type IngestedEventProducer interface {
	Produce(ctx context.Context, event *events.IngestedEvent) error
}

type ingestedEventProducer struct {
	queue *PartitionedQueue[events.IngestedEvent]
}

func NewIngestedEventProducer(queue *PartitionedQueue[events.IngestedEvent]) IngestedEventProducer {
	return &ingestedEventProducer{
		queue: queue,
	}
}

func (producer *ingestedEventProducer) Produce(ctx context.Context, event *events.IngestedEvent) error {
	if event == nil || event.Report == "" {
		return ErrMissingReport
	}

	if err := producer.queue.Publish(ctx, event.Report, *event); err != nil {
		return err
	}
	metricIngestedEventQueueDepth.WithLabelValues(streamIngestedEvent).Set(float64(producer.queue.Depth()))
	metricIngestedEventProducedTotal.WithLabelValues(streamIngestedEvent).Inc()
	return nil
}
