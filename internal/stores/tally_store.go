package stores

import (
	"context"
	"sync"
	"time"

	"rx-analytics/internal/aggregators"
	"rx-analytics/internal/models"
)

// TallyStore holds a report's live aggregate tables, one per calendar day: the open table for
// today plus closed days kept until they are pruned. Tables are fixed-shape and keyed by known
// dimension values, so applying live deltas at any rate never grows memory beyond that bound.
type TallyStore interface {
	// Update runs fn against the table for day, creating an empty one first when needed. fn runs
	// under the store's write lock and must not retain the table.
	Update(ctx context.Context, day time.Time, fn func(table *aggregators.AggregateTable) error) error
	// Replace swaps the table for day.
	Replace(ctx context.Context, day time.Time, table *aggregators.AggregateTable)
	// Get returns a copy of the table for day, or an empty table when nothing was recorded.
	Get(ctx context.Context, day time.Time) *aggregators.AggregateTable
	// Range returns the element-wise sum of every table whose day falls in dateRange.
	Range(ctx context.Context, dateRange models.DateRange) (*aggregators.AggregateTable, error)
	// Prune drops the tables for days before the day of cutoff and returns how many were dropped.
	Prune(ctx context.Context, cutoff time.Time) int
	Days() int
}

type tallyStore struct {
	mu       sync.RWMutex
	loc      *time.Location
	newTable func() *aggregators.AggregateTable
	tables   map[time.Time]*aggregators.AggregateTable
}

// NewTallyStore creates a store whose empty tables come from newTable, typically
// Aggregator.NewTable of the owning report.
func NewTallyStore(newTable func() *aggregators.AggregateTable, loc *time.Location) TallyStore {
	if loc == nil {
		loc = time.UTC
	}
	return &tallyStore{
		loc:      loc,
		newTable: newTable,
		tables:   make(map[time.Time]*aggregators.AggregateTable),
	}
}

func (s *tallyStore) Update(ctx context.Context, day time.Time, fn func(table *aggregators.AggregateTable) error) error {
	day = models.StartOfDay(day, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.tables[day]
	if !ok {
		table = s.newTable()
		s.tables[day] = table
	}
	return fn(table)
}

func (s *tallyStore) Replace(ctx context.Context, day time.Time, table *aggregators.AggregateTable) {
	day = models.StartOfDay(day, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if table == nil {
		delete(s.tables, day)
		return
	}
	s.tables[day] = table.Clone()
}

func (s *tallyStore) Get(ctx context.Context, day time.Time) *aggregators.AggregateTable {
	day = models.StartOfDay(day, s.loc)

	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[day]
	if !ok {
		return s.newTable()
	}
	return table.Clone()
}

func (s *tallyStore) Range(ctx context.Context, dateRange models.DateRange) (*aggregators.AggregateTable, error) {
	out := s.newTable()
	if dateRange.IsEmpty() {
		return out, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for day, table := range s.tables {
		if !dateRange.ContainsDay(day) {
			continue
		}
		if err := out.Merge(table); err != nil {
			return s.newTable(), err
		}
	}
	return out, nil
}

func (s *tallyStore) Prune(ctx context.Context, cutoff time.Time) int {
	cutoff = models.StartOfDay(cutoff, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for day := range s.tables {
		if day.Before(cutoff) {
			delete(s.tables, day)
			removed++
		}
	}
	return removed
}

func (s *tallyStore) Days() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
