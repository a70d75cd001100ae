package stores

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rx-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeDay = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

func event(id string, at time.Time) *models.Event {
	return &models.Event{ID: id, Kind: models.EventDecode, ReceivedAt: at, DurationMinutes: 1}
}

func TestEventStore_Put_Duplicate(t *testing.T) {
	t.Parallel()

	store := NewEventStore(time.UTC)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, event("evt-1", storeDay)))
	err := store.Put(ctx, event("evt-1", storeDay.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrEventAlreadyExist)
	assert.Equal(t, 1, store.Len())

	assert.ErrorIs(t, store.Put(ctx, event("", storeDay)), ErrEventWithoutID)
	assert.ErrorIs(t, store.Put(ctx, nil), ErrEventWithoutID)
}

func TestEventStore_Put_ConcurrentDuplicatesOneWins(t *testing.T) {
	t.Parallel()

	store := NewEventStore(time.UTC)
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.Put(ctx, event("batch-123", storeDay)) == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 1, store.Len())
}

func TestEventStore_Select(t *testing.T) {
	t.Parallel()

	store := NewEventStore(time.UTC)
	ctx := context.Background()
	for i := -2; i <= 2; i++ {
		require.NoError(t, store.Put(ctx, event(fmt.Sprintf("evt-%d", i+2), storeDay.AddDate(0, 0, i).Add(6*time.Hour))))
	}

	selected := store.Select(ctx, models.NewDateRange(storeDay.AddDate(0, 0, -1), storeDay))
	require.Len(t, selected, 2)
	assert.Equal(t, "evt-1", selected[0].ID)
	assert.Equal(t, "evt-2", selected[1].ID)

	assert.Empty(t, store.Select(ctx, models.DateRange{}))
	assert.Len(t, store.Select(ctx, models.NewDateRange(storeDay.AddDate(0, 0, -30), storeDay.AddDate(0, 0, 30))), 5)
}

func TestEventStore_Select_RangeInAnotherLocation(t *testing.T) {
	t.Parallel()

	ist := time.FixedZone("IST", 5*3600+1800)
	store := NewEventStore(time.UTC)
	ctx := context.Background()

	// 20:00 UTC on the 13th is 01:30 IST on the 14th
	require.NoError(t, store.Put(ctx, event("late", storeDay.Add(-4*time.Hour))))
	require.NoError(t, store.Put(ctx, event("early", storeDay.Add(-20*time.Hour))))

	selected := store.Select(ctx, models.SingleDay(time.Date(2026, 10, 14, 12, 0, 0, 0, ist)))
	require.Len(t, selected, 1)
	assert.Equal(t, "late", selected[0].ID)
}

func TestEventStore_ReplaceDay(t *testing.T) {
	t.Parallel()

	store := NewEventStore(time.UTC)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, event("old-1", storeDay.Add(time.Hour))))
	require.NoError(t, store.Put(ctx, event("old-2", storeDay.Add(2*time.Hour))))
	require.NoError(t, store.Put(ctx, event("yesterday", storeDay.Add(-time.Hour))))

	err := store.ReplaceDay(ctx, storeDay.Add(15*time.Hour), []*models.Event{
		event("new-1", storeDay.Add(3*time.Hour)),
		event("old-1", storeDay.Add(4*time.Hour)),
	})
	require.NoError(t, err)

	today := store.Select(ctx, models.SingleDay(storeDay))
	require.Len(t, today, 2)
	assert.Equal(t, "new-1", today[0].ID)
	assert.Equal(t, 3, store.Len())

	// old-2 was superseded and can be stored again
	assert.NoError(t, store.Put(ctx, event("old-2", storeDay.Add(5*time.Hour))))
}

func TestEventStore_ReplaceDay_RejectsWithoutChanges(t *testing.T) {
	t.Parallel()

	store := NewEventStore(time.UTC)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, event("kept", storeDay.Add(time.Hour))))
	require.NoError(t, store.Put(ctx, event("yesterday", storeDay.Add(-time.Hour))))

	tests := []struct {
		name   string
		events []*models.Event
		err    error
	}{
		{name: "event on another day", events: []*models.Event{event("x", storeDay.AddDate(0, 0, 1))}, err: ErrEventOutsideDay},
		{name: "duplicate inside replacement", events: []*models.Event{event("x", storeDay), event("x", storeDay)}, err: ErrEventAlreadyExist},
		{name: "id owned by another day", events: []*models.Event{event("yesterday", storeDay)}, err: ErrEventAlreadyExist},
		{name: "missing id", events: []*models.Event{event("", storeDay)}, err: ErrEventWithoutID},
	}

	for _, tt := range tests {
		err := store.ReplaceDay(ctx, storeDay, tt.events)
		assert.ErrorIs(t, err, tt.err, tt.name)
	}

	today := store.Select(ctx, models.SingleDay(storeDay))
	require.Len(t, today, 1)
	assert.Equal(t, "kept", today[0].ID)
}

func TestEventStore_Prune(t *testing.T) {
	t.Parallel()

	store := NewEventStore(time.UTC)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Put(ctx, event(fmt.Sprintf("evt-%d", i), storeDay.AddDate(0, 0, -i))))
	}

	removed := store.Prune(ctx, storeDay.AddDate(0, 0, -2).Add(10*time.Hour))
	assert.Equal(t, 2, removed)
	assert.Equal(t, 3, store.Len())
	assert.NoError(t, store.Put(ctx, event("evt-4", storeDay)), "pruned ids are forgotten")
}
