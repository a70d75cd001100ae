package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"rx-analytics/internal/events"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/shared/metrics"
	"rx-analytics/internal/shared/svcerrors"
	"rx-analytics/internal/shared/ulid"
)

// EventApplier stores one ingested event into its report.
type EventApplier interface {
	Ingest(ctx context.Context, event *events.IngestedEvent) *svcerrors.ServiceError
}

//go:generate mockgen -source=ingested_event_consumer.go -destination=./mocks/ingested_event_consumer_mock.go -package=mocks
type IngestedEventConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type ingestedEventConsumer struct {
	queue   *PartitionedQueue[events.IngestedEvent]
	applier EventApplier

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewIngestedEventConsumer(queue *PartitionedQueue[events.IngestedEvent], applier EventApplier, logger loggers.Logger) IngestedEventConsumer {
	return &ingestedEventConsumer{
		queue:   queue,
		applier: applier,
		stopCh:  make(chan struct{}),
		logger:  logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-writer lane for the reports routed to it by the producer.
func (consumer *ingestedEventConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.Partition(partitionIndex)
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *ingestedEventConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *ingestedEventConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.IngestedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.handle(ctx, partitionIndex, &event)
		}
	}
}

func (consumer *ingestedEventConsumer) handle(ctx context.Context, partitionIndex int, event *events.IngestedEvent) {
	logger := consumer.logger.With().
		Str(loggers.FieldPartitionId, strconv.Itoa(partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldReport, event.Report).
		Logger()
	if event.Event != nil {
		logger = logger.With().Str(loggers.FieldEventID, event.Event.ID).Logger()
	}
	ctx = logger.WithContext(ctx)

	// Handle panic recovery to prevent worker goroutine from crashing
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricIngestedEventConsumedTotal.WithLabelValues(streamIngestedEvent, svcErr.Code).Inc()
		}
	}()

	svcError := consumer.applier.Ingest(ctx, event)
	if svcError != nil {
		loggers.Ctx(ctx).Warn().Err(svcError).Str(loggers.FieldErrorCode, svcError.Code).Msg("ingested event rejected")
		metricIngestedEventConsumedTotal.WithLabelValues(streamIngestedEvent, svcError.Code).Inc()
		return
	}
	metricIngestedEventConsumedTotal.WithLabelValues(streamIngestedEvent, metrics.ValueNoError).Inc()
}
