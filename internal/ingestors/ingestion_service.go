package ingestors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"rx-analytics/internal/aggregators"
	"rx-analytics/internal/events"
	"rx-analytics/internal/models"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/shared/metrics"
	"rx-analytics/internal/shared/ulid"
	"rx-analytics/internal/stores"
	"rx-analytics/internal/streams"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const (
	maxBatchBytes = 2 * 1024 * 1024
	maxIDLen      = 128
	maxTagLen     = 256
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of an event batch ingestion.
type IngestResult struct {
	BatchID    string `json:"batchId"`
	Accepted   int    `json:"accepted"`
	Duplicates int    `json:"duplicates"`
	Published  int    `json:"published"`
}

// Config bounds how long accepted event ids are remembered for de-duplication.
type Config struct {
	RetentionDays int
	Location      *time.Location
}

// ReportRouter names the reports that consume an event kind.
type ReportRouter interface {
	ReportsFor(kind models.EventKind) []string
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestEvents accepts a JSON array of events. Events whose id was already ingested are
	// skipped, and a batch made only of such events is a conflict.
	IngestEvents(ctx context.Context, userAgent string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	normalizer EventNormalizer
	ledger     stores.EventStore
	router     ReportRouter
	producer   streams.IngestedEventProducer
	config     Config
	clock      func() time.Time
}

func NewIngestionService(normalizer EventNormalizer, ledger stores.EventStore, router ReportRouter, producer streams.IngestedEventProducer, config Config) IngestionService {
	if config.RetentionDays < 1 {
		config.RetentionDays = 35
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &ingestionService{
		normalizer: normalizer,
		ledger:     ledger,
		router:     router,
		producer:   producer,
		config:     config,
		clock:      time.Now,
	}
}

func (s *ingestionService) IngestEvents(ctx context.Context, userAgent string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting events with idempotency key: %s, format: %s", idempotencyKey, format)

	batch, err := s.validateEvents(userAgent, format, r)
	if err != nil {
		metricBatchIngestedTotal.WithLabelValues(codeValidationFailed).Inc()
		return nil, err
	}

	batchID := strings.TrimSpace(idempotencyKey)
	if batchID == "" {
		batchID = ulid.NewULID()
	}

	result := &IngestResult{BatchID: batchID}
	for _, event := range batch {
		err := s.ledger.Put(ctx, event)
		if errors.Is(err, stores.ErrEventAlreadyExist) {
			result.Duplicates++
			metricEventDuplicateTotal.WithLabelValues(string(event.Kind)).Inc()
			logger.Debug().Str(loggers.FieldEventID, event.ID).Msg("skipped duplicate event")
			continue
		}
		if err != nil {
			svcError := errInternalEventLedgerFailed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}

		for _, report := range s.router.ReportsFor(event.Kind) {
			err := s.producer.Produce(ctx, &events.IngestedEvent{Report: report, BatchID: batchID, Event: event})
			if err != nil {
				svcError := errInternalEventProducerFailed(err)
				metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
				return nil, svcError
			}
			result.Published++
		}
		result.Accepted++
		metricEventAcceptedTotal.WithLabelValues(string(event.Kind)).Inc()
	}

	if result.Accepted == 0 {
		svcError := errEventsAlreadyProcessed(stores.ErrEventAlreadyExist)
		metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}

	cutoff := models.StartOfDay(s.clock(), s.config.Location).AddDate(0, 0, -s.config.RetentionDays)
	if pruned := s.ledger.Prune(ctx, cutoff); pruned > 0 {
		logger.Debug().Int("events", pruned).Msg("pruned ingested event ids past retention")
	}

	logger.Info().
		Str("batch_id", batchID).
		Int("accepted", result.Accepted).
		Int("duplicates", result.Duplicates).
		Msg("ingested events")
	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}

func (s *ingestionService) validateEvents(userAgent string, format string, r io.Reader) ([]*models.Event, error) {
	// Handle nil reader
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, maxBatchBytes)
	if err != nil {
		return nil, err
	}

	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	payloads, err := s.parseJSON(buf)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, errValidationFailed("events cannot be empty", nil)
	}

	batch := make([]*models.Event, 0, len(payloads))
	for i, payload := range payloads {
		event, err := s.toEvent(payload, i)
		if err != nil {
			return nil, err
		}
		s.normalizer.Normalize(event, userAgent)
		if err := s.validateEvent(event, i); err != nil {
			return nil, err
		}
		batch = append(batch, event)
	}
	return batch, nil
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed("batch too large: must be <= 2MB", nil)
	}
	return buf, nil
}

// eventPayload is the wire form of a submitted event. Pointers tell missing fields from zero
// values.
type eventPayload struct {
	ID              string                     `json:"id"`
	Kind            string                     `json:"kind"`
	ReceivedAt      *string                    `json:"receivedAt"`
	CompletedAt     *string                    `json:"completedAt"`
	DurationMinutes *float64                   `json:"durationMinutes"`
	Tags            map[string]string          `json:"tags"`
	Payloads        map[string]decimal.Decimal `json:"payloads"`
}

// parseJSON parses buf as a JSON array of event objects.
func (s *ingestionService) parseJSON(buf []byte) ([]eventPayload, error) {
	var payloads []eventPayload
	if err := json.Unmarshal(buf, &payloads); err != nil {
		return nil, errValidationFailed("invalid json: expected an array of events", err)
	}
	return payloads, nil
}

func (s *ingestionService) toEvent(payload eventPayload, index int) (*models.Event, error) {
	if payload.ReceivedAt == nil {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: missing receivedAt", index), nil)
	}
	receivedAt, err := s.parseTime(*payload.ReceivedAt, index)
	if err != nil {
		return nil, err
	}
	if payload.DurationMinutes == nil {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: missing durationMinutes", index), nil)
	}

	event := &models.Event{
		ID:              payload.ID,
		Kind:            models.EventKind(payload.Kind),
		ReceivedAt:      receivedAt,
		DurationMinutes: *payload.DurationMinutes,
		Tags:            payload.Tags,
		Payloads:        payload.Payloads,
	}
	if payload.CompletedAt != nil {
		completedAt, err := s.parseTime(*payload.CompletedAt, index)
		if err != nil {
			return nil, err
		}
		event.CompletedAt = &completedAt
	}
	return event, nil
}

func (s *ingestionService) validateEvent(e *models.Event, index int) error {
	if !e.Kind.Valid() {
		return errValidationFailed(fmt.Sprintf("item at index %d: unknown kind %q", index, e.Kind), nil)
	}
	if len(e.ID) > maxIDLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: id too long: max %d characters", index, maxIDLen), nil)
	}
	if math.IsNaN(e.DurationMinutes) || math.IsInf(e.DurationMinutes, 0) || e.DurationMinutes < 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: durationMinutes must be a finite, non-negative number", index), models.ErrInvalidDuration)
	}
	for name, value := range e.Tags {
		if len(value) > maxTagLen {
			return errValidationFailed(fmt.Sprintf("item at index %d: tag %s too long: max %d characters", index, name, maxTagLen), nil)
		}
	}
	for name, value := range e.Payloads {
		if value.IsNegative() {
			return errValidationFailed(fmt.Sprintf("item at index %d: payload %s must not be negative", index, name), aggregators.ErrInvalidPayload)
		}
	}
	return nil
}

// parseTime parses a time string in RFC3339 format, with or without fractional seconds.
func (s *ingestionService) parseTime(timeStr string, index int) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(timeStr))
	if err != nil {
		return time.Time{}, errValidationFailed(fmt.Sprintf("item at index %d: invalid time format: %s", index, timeStr), err)
	}
	return t, nil
}
