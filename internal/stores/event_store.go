package stores

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"rx-analytics/internal/models"
)

var (
	ErrEventAlreadyExist = errors.New("event already exists")
	ErrEventWithoutID    = errors.New("event has no id")
	ErrEventOutsideDay   = errors.New("event received outside the replaced day")
)

// EventStore keeps a report's raw events in memory, grouped by the calendar day they were
// received. Put is create-if-not-exists on the event id: of two concurrent puts of the same id
// exactly one succeeds and the other gets ErrEventAlreadyExist, which makes ingestion idempotent.
//
//go:generate mockgen -source=event_store.go -destination=./mocks/event_store_mock.go -package=mocks
type EventStore interface {
	Put(ctx context.Context, event *models.Event) error
	// ReplaceDay drops every event received on day and stores events instead.
	ReplaceDay(ctx context.Context, day time.Time, events []*models.Event) error
	// Select returns the events received within dateRange, oldest day first.
	Select(ctx context.Context, dateRange models.DateRange) []*models.Event
	// Prune drops the days before the day of cutoff and returns the number of events removed.
	Prune(ctx context.Context, cutoff time.Time) int
	Len() int
}

type eventStore struct {
	mu    sync.RWMutex
	loc   *time.Location
	ids   map[string]time.Time
	byDay map[time.Time][]*models.Event
}

func NewEventStore(loc *time.Location) EventStore {
	if loc == nil {
		loc = time.UTC
	}
	return &eventStore{
		loc:   loc,
		ids:   make(map[string]time.Time),
		byDay: make(map[time.Time][]*models.Event),
	}
}

func (s *eventStore) Put(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == "" {
		return ErrEventWithoutID
	}
	day := models.StartOfDay(event.ReceivedAt, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[event.ID]; exists {
		return ErrEventAlreadyExist
	}
	s.ids[event.ID] = day
	s.byDay[day] = append(s.byDay[day], event)
	return nil
}

func (s *eventStore) ReplaceDay(ctx context.Context, day time.Time, events []*models.Event) error {
	day = models.StartOfDay(day, s.loc)

	// validate the whole replacement before touching the current day
	seen := make(map[string]struct{}, len(events))
	for _, event := range events {
		if event == nil || event.ID == "" {
			return ErrEventWithoutID
		}
		if !models.StartOfDay(event.ReceivedAt, s.loc).Equal(day) {
			return ErrEventOutsideDay
		}
		if _, dup := seen[event.ID]; dup {
			return ErrEventAlreadyExist
		}
		seen[event.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range seen {
		if owner, exists := s.ids[id]; exists && !owner.Equal(day) {
			return ErrEventAlreadyExist
		}
	}
	for _, old := range s.byDay[day] {
		delete(s.ids, old.ID)
	}
	replaced := make([]*models.Event, len(events))
	copy(replaced, events)
	for _, event := range replaced {
		s.ids[event.ID] = day
	}
	if len(replaced) == 0 {
		delete(s.byDay, day)
		return nil
	}
	s.byDay[day] = replaced
	return nil
}

func (s *eventStore) Select(ctx context.Context, dateRange models.DateRange) []*models.Event {
	out := make([]*models.Event, 0)
	if dateRange.IsEmpty() {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, day := range s.sortedDays() {
		// a store day can straddle the range boundary when the range uses another location
		if !day.Before(dateRange.End()) || !day.AddDate(0, 0, 1).After(dateRange.From) {
			continue
		}
		for _, event := range s.byDay[day] {
			if dateRange.Contains(event.ReceivedAt) {
				out = append(out, event)
			}
		}
	}
	return out
}

func (s *eventStore) Prune(ctx context.Context, cutoff time.Time) int {
	cutoff = models.StartOfDay(cutoff, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for day, events := range s.byDay {
		if !day.Before(cutoff) {
			continue
		}
		for _, event := range events {
			delete(s.ids, event.ID)
		}
		removed += len(events)
		delete(s.byDay, day)
	}
	return removed
}

func (s *eventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *eventStore) sortedDays() []time.Time {
	days := make([]time.Time, 0, len(s.byDay))
	for day := range s.byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
