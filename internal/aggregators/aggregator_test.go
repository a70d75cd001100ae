package aggregators

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"rx-analytics/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

func scenarioBucketSet(t *testing.T) *models.BucketSet {
	t.Helper()
	set, err := models.NewBucketSet([]models.Bucket{
		{Label: "0-1", Min: 0, Max: 1},
		{Label: "1-5", Min: 1, Max: 5},
		{Label: "5-10", Min: 5, Max: 10},
		{Label: "10+", Min: 10, Max: math.Inf(1)},
	})
	require.NoError(t, err)
	return set
}

func decodeEvent(id string, at time.Time, minutes float64, employee string) *models.Event {
	return &models.Event{
		ID:              id,
		Kind:            models.EventDecode,
		ReceivedAt:      at,
		DurationMinutes: minutes,
		Tags:            map[string]string{models.TagEmployeeID: employee},
	}
}

func TestAggregator_Build_BucketCounts(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyConstant("All"), scenarioBucketSet(t), nil, 2)
	events := []*models.Event{
		decodeEvent("e1", day1.Add(1*time.Hour), 0.5, "EMP-1"),
		decodeEvent("e2", day1.Add(2*time.Hour), 5.5, "EMP-1"),
		decodeEvent("e3", day1.Add(3*time.Hour), 12, "EMP-2"),
	}

	table := agg.Build(context.Background(), events, models.SingleDay(day1))

	vector, ok := table.Get(models.NewDimensionKey("All"))
	require.True(t, ok)
	assert.Equal(t, []int64{1, 0, 1, 1}, vector.Counts)
	assert.Equal(t, int64(3), vector.Total())
}

func TestAggregator_Build_FiltersByDateRange(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), scenarioBucketSet(t), nil, 2)
	events := []*models.Event{
		decodeEvent("in", day1.Add(23*time.Hour+59*time.Minute), 2, "EMP-1"),
		decodeEvent("before", day1.Add(-time.Second), 2, "EMP-1"),
		decodeEvent("after", day1.AddDate(0, 0, 1), 2, "EMP-1"),
		nil,
	}

	table := agg.Build(context.Background(), events, models.SingleDay(day1))
	assert.Equal(t, int64(1), table.Total())

	empty := agg.Build(context.Background(), events, models.DateRange{})
	assert.Equal(t, 0, empty.Len())
}

func TestAggregator_Build_SumInvariant(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), models.MinuteBuckets(10), []string{models.PayloadSaleValue}, 5)
	rng := rand.New(rand.NewPCG(11, 7))

	perEmployee := map[string]int64{}
	events := make([]*models.Event, 0, 500)
	for i := 0; i < 500; i++ {
		employee := []string{"EMP-1", "EMP-2", "EMP-3", ""}[rng.IntN(4)]
		e := decodeEvent("", day1.Add(time.Duration(rng.IntN(86400))*time.Second), rng.Float64()*20, employee)
		events = append(events, e)
		if employee == "" {
			employee = models.UnknownValue
		}
		perEmployee[employee]++
	}

	table := agg.Build(context.Background(), events, models.SingleDay(day1))

	var total int64
	for employee, expected := range perEmployee {
		vector, ok := table.Get(models.NewDimensionKey(employee))
		require.True(t, ok, employee)
		assert.Equal(t, expected, vector.Total(), employee)
		total += vector.Total()
	}
	assert.Equal(t, int64(len(events)), total)
	assert.Equal(t, len(perEmployee), table.Len())
}

func TestAggregator_Build_Deterministic(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), models.MinuteBuckets(5), nil, 3)
	events := []*models.Event{
		decodeEvent("a", day1, 1.5, "EMP-2"),
		decodeEvent("b", day1, 7, "EMP-1"),
		decodeEvent("c", day1, 3, "EMP-2"),
	}

	first := agg.Rows(agg.Build(context.Background(), events, models.SingleDay(day1)))
	second := agg.Rows(agg.Build(context.Background(), events, models.SingleDay(day1)))
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "EMP-1", first[0].Key.String())
}

func TestAggregator_Accumulate_RejectsWithoutCorruption(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), models.MinuteBuckets(5), []string{models.PayloadSaleValue}, 3)
	table := agg.NewTable()
	ctx := context.Background()

	require.NoError(t, agg.Accumulate(ctx, table, decodeEvent("ok", day1, 2, "EMP-1")))

	bad := []*models.Event{
		decodeEvent("neg", day1, -1, "EMP-1"),
		decodeEvent("nan", day1, math.NaN(), "EMP-2"),
		decodeEvent("inf", day1, math.Inf(1), "EMP-1"),
		{
			ID:              "neg-sale",
			ReceivedAt:      day1,
			DurationMinutes: 1,
			Tags:            map[string]string{models.TagEmployeeID: "EMP-3"},
			Payloads:        map[string]decimal.Decimal{models.PayloadSaleValue: decimal.NewFromInt(-5)},
		},
		nil,
	}
	for _, e := range bad {
		assert.Error(t, agg.Accumulate(ctx, table, e))
	}

	// only the valid event is present, and no empty rows were created for rejected keys
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, int64(1), table.Total())
	_, exists := table.Get(models.NewDimensionKey("EMP-3"))
	assert.False(t, exists)
}

func TestAggregator_MetricsCountOnlyLiveAccumulation(t *testing.T) {
	t.Parallel()

	const name = "metrics-live-only"
	agg := NewAggregator(name, KeyByEmployee(), scenarioBucketSet(t), nil, 2)
	ctx := context.Background()
	stored := []*models.Event{
		decodeEvent("e1", day1.Add(time.Hour), 1, "EMP-1"),
		decodeEvent("e2", day1.Add(2*time.Hour), -1, "EMP-1"),
	}

	for range 3 {
		agg.Build(ctx, stored, models.SingleDay(day1))
	}
	assert.Equal(t, 0.0, testutil.ToFloat64(metricEventsAccumulatedTotal.WithLabelValues(name)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metricEventsRejectedTotal.WithLabelValues(name, "invalid_duration")))

	table := agg.NewTable()
	require.NoError(t, agg.Accumulate(ctx, table, stored[0]))
	require.Error(t, agg.Accumulate(ctx, table, stored[1]))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricEventsAccumulatedTotal.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricEventsRejectedTotal.WithLabelValues(name, "invalid_duration")))
}

func TestAggregator_Apply_IncrementsExactlyOneBucket(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("store", KeyByStateCity(), models.MinuteBuckets(5), []string{models.PayloadSaleValue}, 3)
	vector := agg.NewVector()

	e := decodeEvent("x", day1, 4.2, "EMP-1")
	e.Payloads = map[string]decimal.Decimal{models.PayloadSaleValue: decimal.RequireFromString("120.50")}
	require.NoError(t, agg.Apply(&vector, e))

	assert.Equal(t, []int64{0, 0, 0, 0, 1, 0}, vector.Counts)
	assert.True(t, decimal.RequireFromString("120.50").Equal(vector.Sums[0]))

	err := agg.Apply(&vector, decodeEvent("y", day1, -3, "EMP-1"))
	assert.ErrorIs(t, err, models.ErrInvalidDuration)
	assert.Equal(t, int64(1), vector.Total())
}

func TestAggregator_WindowedMerge_TodayAddsToHistory(t *testing.T) {
	t.Parallel()

	buckets := scenarioBucketSet(t)
	agg := NewAggregator("decode", KeyConstant("All"), buckets, nil, 2)
	ctx := context.Background()
	day2 := day1.AddDate(0, 0, 1)

	history := []*models.Event{
		decodeEvent("h1", day1.Add(time.Hour), 6, "EMP-1"),
		decodeEvent("h2", day1.Add(2*time.Hour), 7, "EMP-1"),
	}
	merged := agg.Build(ctx, history, models.NewDateRange(day1, day2))

	today := agg.NewTable()
	require.NoError(t, agg.Accumulate(ctx, today, decodeEvent("t1", day2.Add(time.Hour), 8, "EMP-1")))

	require.NoError(t, merged.Merge(today))

	vector, ok := merged.Get(models.NewDimensionKey("All"))
	require.True(t, ok)
	assert.Equal(t, int64(3), vector.Counts[buckets.IndexOfLabel("5-10")])
	assert.Equal(t, int64(3), vector.Total())
}

func TestAggregator_Reduce_WeightedPercentage(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), scenarioBucketSet(t), nil, 2)

	// one event above threshold (100%) vs 10,000 events of which 1,000 above (10%)
	small := models.NewAggregateRow(models.NewDimensionKey("EMP-1"), models.BucketVector{Counts: []int64{0, 0, 1, 0}}, 2)
	large := models.NewAggregateRow(models.NewDimensionKey("EMP-2"), models.BucketVector{Counts: []int64{5000, 4000, 600, 400}}, 2)

	total, err := agg.Reduce([]models.AggregateRow{small, large})
	require.NoError(t, err)

	assert.Equal(t, models.GrandTotalKey, total.Key.String())
	assert.Equal(t, []int64{5000, 4000, 601, 400}, total.Vector.Counts)
	assert.Equal(t, int64(10001), total.Total)
	assert.Equal(t, int64(1001), total.AboveThreshold)
	assert.InDelta(t, 1001.0/10001.0*100, total.Percentage, 1e-9)
	assert.NotEqual(t, (small.Percentage+large.Percentage)/2, total.Percentage)
}

func TestAggregator_Reduce_GrandTotalEqualsColumnSums(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("store", KeyByStateCity(), models.MinuteBuckets(5), []string{models.PayloadSaleValue}, 3)
	rng := rand.New(rand.NewPCG(3, 4))
	states := []string{"Telangana", "Karnataka", "Kerala"}

	events := make([]*models.Event, 0, 200)
	for i := 0; i < 200; i++ {
		e := decodeEvent("", day1, rng.Float64()*9, "EMP-1")
		e.Tags[models.TagState] = states[rng.IntN(len(states))]
		e.Payloads = map[string]decimal.Decimal{models.PayloadSaleValue: decimal.NewFromInt(int64(rng.IntN(500)))}
		events = append(events, e)
	}

	rows := agg.Rows(agg.Build(context.Background(), events, models.SingleDay(day1)))
	total, err := agg.Reduce(rows)
	require.NoError(t, err)

	for b := range total.Vector.Counts {
		var sum int64
		for _, row := range rows {
			sum += row.Vector.Counts[b]
		}
		assert.Equal(t, sum, total.Vector.Counts[b], "bucket %d", b)
	}
	sales := decimal.Zero
	for _, row := range rows {
		sales = sales.Add(row.Vector.Sums[0])
	}
	assert.True(t, sales.Equal(total.Vector.Sums[0]))
	assert.Equal(t, int64(200), total.Total)
}

func TestAggregator_Reduce_EmptyIsZeroFilled(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), scenarioBucketSet(t), []string{models.PayloadSaleValue}, 2)

	total, err := agg.Reduce(nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0, 0}, total.Vector.Counts)
	require.Len(t, total.Vector.Sums, 1)
	assert.True(t, total.Vector.Sums[0].IsZero())
	assert.Equal(t, int64(0), total.Total)
	assert.Equal(t, 0.0, total.Percentage)
}

func TestAggregator_Reduce_ForeignShape(t *testing.T) {
	t.Parallel()

	agg := NewAggregator("decode", KeyByEmployee(), scenarioBucketSet(t), nil, 2)
	foreign := models.NewAggregateRow(models.NewDimensionKey("x"), models.BucketVector{Counts: []int64{1}}, 0)

	total, err := agg.Reduce([]models.AggregateRow{foreign})
	assert.ErrorIs(t, err, models.ErrShapeMismatch)
	assert.Equal(t, int64(0), total.Total)
}
