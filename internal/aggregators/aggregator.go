package aggregators

import (
	"context"
	"errors"
	"fmt"

	"rx-analytics/internal/models"
	"rx-analytics/internal/shared/loggers"

	"github.com/shopspring/decimal"
)

var ErrInvalidPayload = errors.New("invalid payload")

// Aggregator binds a report's keying and bucketing strategy. It holds no mutable state, so one
// instance serves every table of its report.
type Aggregator struct {
	name      string
	keys      KeyExtractor
	buckets   *models.BucketSet
	payloads  []string
	threshold int
}

// NewAggregator creates an aggregator. threshold is the index of the first bucket counted as
// "above threshold" in derived row fields.
func NewAggregator(name string, keys KeyExtractor, buckets *models.BucketSet, payloads []string, threshold int) *Aggregator {
	copied := make([]string, len(payloads))
	copy(copied, payloads)
	return &Aggregator{
		name:      name,
		keys:      keys,
		buckets:   buckets,
		payloads:  copied,
		threshold: threshold,
	}
}

func (a *Aggregator) Name() string               { return a.name }
func (a *Aggregator) Keys() KeyExtractor         { return a.keys }
func (a *Aggregator) Buckets() *models.BucketSet { return a.buckets }
func (a *Aggregator) Threshold() int             { return a.threshold }
func (a *Aggregator) PayloadFields() []string    { return append([]string(nil), a.payloads...) }
func (a *Aggregator) NewVector() models.BucketVector {
	return models.NewBucketVector(a.buckets.Len(), len(a.payloads))
}
func (a *Aggregator) NewTable() *AggregateTable {
	return NewAggregateTable(a.buckets.Len(), len(a.payloads))
}

// resolve computes everything an event contributes before anything is mutated.
func (a *Aggregator) resolve(event *models.Event) (int, []decimal.Decimal, error) {
	if event == nil {
		return -1, nil, fmt.Errorf("%w: nil event", models.ErrInvalidDuration)
	}
	idx, err := a.buckets.Index(event.DurationMinutes)
	if err != nil {
		return -1, nil, err
	}
	values := make([]decimal.Decimal, len(a.payloads))
	for i, name := range a.payloads {
		v := event.Payload(name)
		if v.IsNegative() {
			return -1, nil, fmt.Errorf("%w: %s=%s is negative", ErrInvalidPayload, name, v.String())
		}
		values[i] = v
	}
	return idx, values, nil
}

// Apply adds one event to vector. Either the event is fully applied or vector is untouched.
func (a *Aggregator) Apply(vector *models.BucketVector, event *models.Event) error {
	idx, values, err := a.resolve(event)
	if err != nil {
		return err
	}
	return vector.Add(idx, values)
}

// Accumulate adds one live event to table under its dimension key. A rejected event is logged
// and counted and leaves table untouched.
func (a *Aggregator) Accumulate(ctx context.Context, table *AggregateTable, event *models.Event) error {
	if err := a.accumulate(table, event); err != nil {
		reason := rejectionReason(err)
		metricEventsRejectedTotal.WithLabelValues(a.name, reason).Inc()
		logger := loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldReport, a.name)
		if event != nil {
			logger = logger.Str(loggers.FieldEventID, event.ID)
		}
		logger.Msg("event rejected by aggregation")
		return err
	}
	metricEventsAccumulatedTotal.WithLabelValues(a.name).Inc()
	return nil
}

func (a *Aggregator) accumulate(table *AggregateTable, event *models.Event) error {
	idx, values, err := a.resolve(event)
	if err != nil {
		return err
	}
	return table.add(a.keys.Key(event), idx, values)
}

// Build groups the events falling in dateRange by key and buckets them. Rejected events are
// skipped silently and Build never touches the accumulation metrics. Identical inputs always give
// identical tables.
func (a *Aggregator) Build(ctx context.Context, events []*models.Event, dateRange models.DateRange) *AggregateTable {
	table := a.NewTable()
	if dateRange.IsEmpty() {
		return table
	}
	for _, event := range events {
		if event == nil || !dateRange.Contains(event.ReceivedAt) {
			continue
		}
		_ = a.accumulate(table, event)
	}
	return table
}

// Rows converts table into aggregate rows ordered by key.
func (a *Aggregator) Rows(table *AggregateTable) []models.AggregateRow {
	keys := table.Keys()
	rows := make([]models.AggregateRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, models.NewAggregateRow(key, table.vectors[key].Clone(), a.threshold))
	}
	return rows
}

// Reduce folds rows into the grand-total row. Derived fields are recomputed from the summed
// vector, so the percentage is weighted by row totals. An empty input yields a zero-filled row.
// A row of another shape fails the whole reduction with a zero-filled row.
func (a *Aggregator) Reduce(rows []models.AggregateRow) (models.AggregateRow, error) {
	key := models.NewDimensionKey(models.GrandTotalKey)
	sum := a.NewVector()
	for _, row := range rows {
		if err := sum.Merge(row.Vector); err != nil {
			return models.NewAggregateRow(key, a.NewVector(), a.threshold), fmt.Errorf("grand total over row %q: %w", row.Key, err)
		}
	}
	return models.NewAggregateRow(key, sum, a.threshold), nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, models.ErrShapeMismatch):
		return "shape_mismatch"
	default:
		return "unknown"
	}
}
