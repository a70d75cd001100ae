package reports

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"rx-analytics/internal/aggregators"
	"rx-analytics/internal/models"
	"rx-analytics/internal/queries"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/simulators"
	"rx-analytics/internal/stores"
)

// Evaluation is one computed result before pagination.
type Evaluation struct {
	Rows       []models.AggregateRow
	GrandTotal models.AggregateRow
	Filters    queries.FilterSet
	Resets     []queries.Reset
	// LiveExcluded is set when live tallies existed in range but the filters could not be applied
	// to them, so they were left out of the result.
	LiveExcluded bool
}

// Report is the state container of one report: its stored events and live tallies. Writers are
// serialized by the report lock and queries read a consistent snapshot of both stores.
type Report struct {
	def           Definition
	loc           *time.Location
	retentionDays int

	mu      sync.RWMutex
	events  stores.EventStore
	tallies stores.TallyStore
	lastDay time.Time
	clock   func() time.Time
}

func NewReport(def Definition, loc *time.Location, retentionDays int) *Report {
	if loc == nil {
		loc = time.UTC
	}
	return &Report{
		def:           def,
		loc:           loc,
		retentionDays: max(retentionDays, 1),
		events:        stores.NewEventStore(loc),
		tallies:       stores.NewTallyStore(def.Aggregator.NewTable, loc),
		clock:         time.Now,
	}
}

func (r *Report) Definition() Definition {
	return r.def
}

// Validate reports whether event would be accepted by the report's aggregator.
func (r *Report) Validate(event *models.Event) error {
	vector := r.def.Aggregator.NewVector()
	return r.def.Aggregator.Apply(&vector, event)
}

// Ingest stores one event. Duplicate ids return stores.ErrEventAlreadyExist.
func (r *Report) Ingest(ctx context.Context, event *models.Event) error {
	if err := r.Validate(event); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events.Put(ctx, event)
}

// Seed stores historical events, skipping duplicates and events the aggregator rejects. It
// returns how many were stored.
func (r *Report) Seed(ctx context.Context, events []*models.Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for _, event := range events {
		if r.Validate(event) != nil {
			continue
		}
		if err := r.events.Put(ctx, event); err == nil {
			stored++
		}
	}
	return stored
}

// ApplyTick absorbs one simulator tick. Deltas go to the live tally of the tick's day, a
// replacement supersedes every stored event of that day.
func (r *Report) ApplyTick(ctx context.Context, tick simulators.Tick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollOver(ctx, tick.At)
	switch tick.Mode {
	case simulators.ModeReplaceToday:
		kept := make([]*models.Event, 0, len(tick.Events))
		for _, event := range tick.Events {
			if r.Validate(event) == nil {
				kept = append(kept, event)
			}
		}
		return r.events.ReplaceDay(ctx, tick.At, kept)
	case simulators.ModeDeltas:
		return r.tallies.Update(ctx, tick.At, func(table *aggregators.AggregateTable) error {
			for _, event := range tick.Events {
				// rejected events are logged and counted by the aggregator
				_ = r.def.Aggregator.Accumulate(ctx, table, event)
			}
			return nil
		})
	default:
		return fmt.Errorf("unsupported tick mode %q", tick.Mode)
	}
}

// rollOver prunes state older than the retention window the first time a new day is seen.
func (r *Report) rollOver(ctx context.Context, now time.Time) {
	today := models.StartOfDay(now, r.loc)
	if !today.After(r.lastDay) {
		return
	}
	r.lastDay = today
	cutoff := today.AddDate(0, 0, -r.retentionDays)
	events := r.events.Prune(ctx, cutoff)
	tallies := r.tallies.Prune(ctx, cutoff)
	if events > 0 || tallies > 0 {
		loggers.Ctx(ctx).Info().
			Str(loggers.FieldReport, r.def.Name).
			Int("events", events).
			Int("tally_days", tallies).
			Msg("pruned report state past retention")
	}
}

// Evaluate computes the rows and grand total for dateRange and filters. When previous is not
// nil, cascaded child filters invalidated by a parent change are reset first.
func (r *Report) Evaluate(ctx context.Context, dateRange models.DateRange, filters queries.FilterSet, previous *queries.FilterSet) (*Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agg := r.def.Aggregator
	evaluation := &Evaluation{Filters: filters, Resets: make([]queries.Reset, 0)}
	if previous != nil && len(r.def.Cascades) > 0 {
		known := r.knownEvents(ctx)
		for _, cascade := range r.def.Cascades {
			var reset *queries.Reset
			evaluation.Filters, reset = cascade.Reconcile(ctx, known, *previous, evaluation.Filters)
			if reset != nil {
				evaluation.Resets = append(evaluation.Resets, *reset)
			}
		}
	}

	matched := queries.Query(r.events.Select(ctx, dateRange), dateRange, evaluation.Filters)
	table := agg.Build(ctx, matched, dateRange)

	if !dateRange.IsEmpty() {
		live, err := r.tallies.Range(ctx, dateRange)
		if err != nil {
			return nil, err
		}
		if live.Len() > 0 {
			keep, ok := r.liveKeyFilter(evaluation.Filters)
			if ok {
				if err := table.Merge(live.Filter(keep)); err != nil {
					return nil, err
				}
			} else {
				evaluation.LiveExcluded = true
			}
		}
	}

	evaluation.Rows = agg.Rows(table)
	total, err := agg.Reduce(evaluation.Rows)
	if err != nil {
		return nil, err
	}
	evaluation.GrandTotal = total
	return evaluation, nil
}

// liveKeyFilter translates filters into a predicate over dimension keys. Tallies keep only keys,
// so it fails when an active filter targets a field that is not a key dimension.
func (r *Report) liveKeyFilter(filters queries.FilterSet) (func(models.DimensionKey) bool, bool) {
	positions := r.def.keyPositions()

	type keyMatcher struct {
		position int
		matcher  queries.ValueMatcher
	}
	matchers := make([]keyMatcher, 0)
	for _, predicate := range filters.Active() {
		position, ok := positions[predicate.Field()]
		if !ok {
			return nil, false
		}
		matcher, ok := predicate.(queries.ValueMatcher)
		if !ok {
			return nil, false
		}
		matchers = append(matchers, keyMatcher{position: position, matcher: matcher})
	}

	return func(key models.DimensionKey) bool {
		values := key.Values()
		for _, m := range matchers {
			if m.position >= len(values) || !m.matcher.MatchValue(values[m.position]) {
				return false
			}
		}
		return true
	}, true
}

// Options lists the values a client may pick for field. A cascaded child only offers the values
// found under its parent's current value.
func (r *Report) Options(ctx context.Context, field string, filters queries.FilterSet) ([]string, error) {
	spec, ok := r.def.FieldSpec(field)
	if !ok || spec.Kind != queries.KindExact {
		return nil, fmt.Errorf("%w: %s", queries.ErrUnknownField, field)
	}

	r.mu.RLock()
	known := r.knownEvents(ctx)
	r.mu.RUnlock()

	if cascade, ok := r.def.ParentOf(field); ok {
		return cascade.Options(known, filters.Value(cascade.Parent)), nil
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, event := range known {
		value := event.Field(field)
		if value == "" {
			value = models.UnknownValue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out, nil
}

// knownEvents returns every stored event in the retention window plus one stand-in event per
// live tally key, carrying that key's dimension values as tags. Callers hold the read lock.
func (r *Report) knownEvents(ctx context.Context) []*models.Event {
	window := r.retentionWindow()
	known := r.events.Select(ctx, window)

	live, err := r.tallies.Range(ctx, window)
	if err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldReport, r.def.Name).Msg("failed to read live tallies")
		return known
	}
	dims := r.def.Aggregator.Keys().Dimensions()
	for _, key := range live.Keys() {
		tags := make(map[string]string, len(dims))
		for i, value := range key.Values() {
			if i < len(dims) && dims[i].Tag != "" {
				tags[dims[i].Tag] = value
			}
		}
		known = append(known, &models.Event{Kind: r.def.Kind, Tags: tags})
	}
	return known
}

func (r *Report) retentionWindow() models.DateRange {
	to := models.StartOfDay(r.clock(), r.loc)
	if r.lastDay.After(to) {
		to = r.lastDay
	}
	return models.NewDateRange(to.AddDate(0, 0, -r.retentionDays), to)
}

// Stats reports the stored event count and the number of days with live tallies.
func (r *Report) Stats() (events int, tallyDays int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.events.Len(), r.tallies.Days()
}
