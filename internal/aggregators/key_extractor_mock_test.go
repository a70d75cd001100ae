package aggregators_test

import (
	"context"
	"testing"
	"time"

	"rx-analytics/internal/aggregators"
	aggregatormocks "rx-analytics/internal/aggregators/mocks"
	"rx-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAggregator_Build_KeysOnlyAcceptedEventsInRange(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	keys := aggregatormocks.NewMockKeyExtractor(ctrl)
	agg := aggregators.NewAggregator("custom", keys, models.MinuteBuckets(3), nil, 1)

	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	inRange := []*models.Event{
		{ID: "a", ReceivedAt: day.Add(time.Hour), DurationMinutes: 0.5},
		{ID: "b", ReceivedAt: day.Add(2 * time.Hour), DurationMinutes: 2},
	}
	outOfRange := &models.Event{ID: "c", ReceivedAt: day.AddDate(0, 0, 1), DurationMinutes: 1}
	rejected := &models.Event{ID: "d", ReceivedAt: day.Add(3 * time.Hour), DurationMinutes: -1}

	keys.EXPECT().Key(inRange[0]).Return(models.NewDimensionKey("x"))
	keys.EXPECT().Key(inRange[1]).Return(models.NewDimensionKey("y"))

	table := agg.Build(context.Background(), append(inRange, outOfRange, rejected), models.SingleDay(day))

	require.Equal(t, 2, table.Len())
	assert.Equal(t, int64(2), table.Total())
	x, ok := table.Get(models.NewDimensionKey("x"))
	require.True(t, ok)
	assert.Equal(t, []int64{1, 0, 0, 0}, x.Counts)
	y, ok := table.Get(models.NewDimensionKey("y"))
	require.True(t, ok)
	assert.Equal(t, []int64{0, 0, 1, 0}, y.Counts)
}
