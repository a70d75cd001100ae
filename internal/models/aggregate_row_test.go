package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketVector_AddKeepsSumInvariant(t *testing.T) {
	t.Parallel()

	v := NewBucketVector(4, 1)
	indexes := []int{0, 2, 3, 2, 2, 1}
	for _, idx := range indexes {
		require.NoError(t, v.Add(idx, []decimal.Decimal{decimal.NewFromFloat(1.25)}))
	}

	assert.Equal(t, []int64{1, 1, 3, 1}, v.Counts)
	assert.Equal(t, int64(len(indexes)), v.Total())
	assert.True(t, decimal.NewFromFloat(7.5).Equal(v.Sums[0]))
}

func TestBucketVector_AddRejectsBadShapeWithoutMutation(t *testing.T) {
	t.Parallel()

	v := NewBucketVector(2, 1)

	err := v.Add(5, []decimal.Decimal{decimal.Zero})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	err = v.Add(0, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.Equal(t, int64(0), v.Total())
	assert.True(t, v.Sums[0].IsZero())
}

func TestBucketVector_Merge(t *testing.T) {
	t.Parallel()

	a := BucketVector{Counts: []int64{2, 0, 1}, Sums: []decimal.Decimal{decimal.NewFromInt(10)}}
	b := BucketVector{Counts: []int64{1, 4, 0}, Sums: []decimal.Decimal{decimal.NewFromInt(5)}}

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []int64{3, 4, 1}, a.Counts)
	assert.True(t, decimal.NewFromInt(15).Equal(a.Sums[0]))

	// b untouched
	assert.Equal(t, []int64{1, 4, 0}, b.Counts)
}

func TestBucketVector_MergeShapeMismatchLeavesReceiver(t *testing.T) {
	t.Parallel()

	a := BucketVector{Counts: []int64{2, 0}, Sums: []decimal.Decimal{}}
	b := BucketVector{Counts: []int64{1, 1, 1}, Sums: []decimal.Decimal{}}

	err := a.Merge(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, []int64{2, 0}, a.Counts)
}

func TestBucketVector_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	a := NewBucketVector(2, 1)
	require.NoError(t, a.Add(1, []decimal.Decimal{decimal.NewFromInt(3)}))
	b := a.Clone()
	require.NoError(t, b.Add(1, []decimal.Decimal{decimal.NewFromInt(3)}))

	assert.Equal(t, int64(1), a.Total())
	assert.Equal(t, int64(2), b.Total())
}

func TestNewAggregateRow_DerivedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		counts     []int64
		threshold  int
		total      int64
		above      int64
		percentage float64
	}{
		{name: "empty row", counts: []int64{0, 0, 0}, threshold: 1, total: 0, above: 0, percentage: 0},
		{name: "half above", counts: []int64{2, 1, 1}, threshold: 1, total: 4, above: 2, percentage: 50},
		{name: "all above", counts: []int64{0, 3, 1}, threshold: 1, total: 4, above: 4, percentage: 100},
		{name: "threshold zero", counts: []int64{1, 1, 1}, threshold: 0, total: 3, above: 3, percentage: 100},
		{name: "threshold past end", counts: []int64{1, 1, 1}, threshold: 3, total: 3, above: 0, percentage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := NewAggregateRow(NewDimensionKey("EMP-1"), BucketVector{Counts: tt.counts}, tt.threshold)
			assert.Equal(t, tt.total, row.Total)
			assert.Equal(t, tt.above, row.AboveThreshold)
			assert.InDelta(t, tt.percentage, row.Percentage, 1e-9)
			assert.GreaterOrEqual(t, row.Percentage, 0.0)
			assert.LessOrEqual(t, row.Percentage, 100.0)
		})
	}
}

func TestAggregateRow_Average(t *testing.T) {
	t.Parallel()

	vector := BucketVector{Counts: []int64{1, 3}, Sums: []decimal.Decimal{decimal.NewFromInt(100)}}
	row := NewAggregateRow(NewDimensionKey("x"), vector, 1)

	assert.True(t, decimal.NewFromInt(25).Equal(row.Average(0)))
	assert.True(t, row.Average(1).IsZero())

	empty := NewAggregateRow(NewDimensionKey("x"), NewBucketVector(2, 1), 1)
	assert.True(t, empty.Average(0).IsZero())
}

func TestDimensionKey(t *testing.T) {
	t.Parallel()

	a := NewDimensionKey("Telangana", "Hyderabad")
	b := NewDimensionKey("Telangana", "Hyderabad")
	c := NewDimensionKey("Telangana", "Warangal")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, []string{"Telangana", "Hyderabad"}, a.Values())
	assert.Equal(t, "Telangana / Hyderabad", a.String())
	assert.True(t, a.Less(c))

	set := map[DimensionKey]int{a: 1}
	set[b]++
	assert.Equal(t, 2, set[a])
}

func TestDimensionKey_ValuesRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
	}{
		{"plain", []string{"CA", "Fresno"}},
		{"unit separator", []string{"A\x1fB", "C"}},
		{"nul inside value", []string{"A\x00", "\x00B"}},
		{"trailing nul", []string{"A", "B\x00"}},
		{"empty values", []string{"", ""}},
		{"single", []string{"Web"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.values, NewDimensionKey(tt.values...).Values())
		})
	}
}

func TestDimensionKey_DistinctTuplesNeverCollide(t *testing.T) {
	t.Parallel()

	pairs := [][2][]string{
		{{"A\x1fB", "C"}, {"A", "B\x1fC"}},
		{{"A\x00", "B"}, {"A", "\x00B"}},
		{{"A\x00\x00B", "C"}, {"A", "B", "C"}},
	}
	for _, pair := range pairs {
		left, right := NewDimensionKey(pair[0]...), NewDimensionKey(pair[1]...)
		assert.NotEqual(t, left, right, "%q and %q", pair[0], pair[1])
	}
	assert.Len(t, NewDimensionKey("A\x1fB", "C").Values(), 2)
}

func TestDimensionKey_LessFollowsTupleOrder(t *testing.T) {
	t.Parallel()

	ordered := [][]string{
		{"A", ""},
		{"A", "B"},
		{"A\x00", ""},
		{"AB", "A"},
		{"B", "A"},
	}
	for i := 1; i < len(ordered); i++ {
		prev, next := NewDimensionKey(ordered[i-1]...), NewDimensionKey(ordered[i]...)
		assert.True(t, prev.Less(next), "%q < %q", ordered[i-1], ordered[i])
		assert.False(t, next.Less(prev), "%q < %q", ordered[i], ordered[i-1])
	}
	assert.Equal(t, "CA / Fresno", NewDimensionKey("CA", "Fresno").String())
}
