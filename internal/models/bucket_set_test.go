package models

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioBuckets(t *testing.T) *BucketSet {
	t.Helper()
	set, err := NewBucketSet([]Bucket{
		{Label: "under 1", Min: 0, Max: 1},
		{Label: "1-5", Min: 1, Max: 5},
		{Label: "5-10", Min: 5, Max: 10},
		{Label: "over 10", Min: 10, Max: math.Inf(1)},
	})
	require.NoError(t, err)
	return set
}

func TestBucketSet_Index_HalfOpenBoundaries(t *testing.T) {
	t.Parallel()

	set := scenarioBuckets(t)

	tests := []struct {
		name     string
		minutes  float64
		expected string
	}{
		{name: "zero", minutes: 0, expected: "under 1"},
		{name: "inside first", minutes: 0.5, expected: "under 1"},
		{name: "exactly first max", minutes: 1, expected: "1-5"},
		{name: "just below 5", minutes: 4.999999, expected: "1-5"},
		{name: "exactly 5", minutes: 5, expected: "5-10"},
		{name: "inside third", minutes: 5.5, expected: "5-10"},
		{name: "exactly 10", minutes: 10, expected: "over 10"},
		{name: "large", minutes: 1e9, expected: "over 10"},
		{name: "max float", minutes: math.MaxFloat64, expected: "over 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			label, err := set.Label(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestBucketSet_Index_RejectsInvalidDurations(t *testing.T) {
	t.Parallel()

	set := scenarioBuckets(t)

	for _, minutes := range []float64{-0.001, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		idx, err := set.Index(minutes)
		assert.ErrorIs(t, err, ErrInvalidDuration, "minutes=%v", minutes)
		assert.Equal(t, -1, idx)
	}
}

func TestBucketSet_Index_Totality(t *testing.T) {
	t.Parallel()

	set := MinuteBuckets(10)
	buckets := set.Buckets()
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 10000; i++ {
		minutes := rng.Float64() * 30
		idx, err := set.Index(minutes)
		require.NoError(t, err)

		// exactly one bucket contains the value
		matches := 0
		for _, b := range buckets {
			if minutes >= b.Min && minutes < b.Max {
				matches++
			}
		}
		assert.Equal(t, 1, matches)
		assert.GreaterOrEqual(t, minutes, buckets[idx].Min)
		assert.Less(t, minutes, buckets[idx].Max)
	}
}

func TestMinuteBuckets_Labels(t *testing.T) {
	t.Parallel()

	set := MinuteBuckets(5)

	assert.Equal(t, []string{
		"0-1 minutes",
		"1-2 minutes",
		"2-3 minutes",
		"3-4 minutes",
		"4-5 minutes",
		"over 5 minutes",
	}, set.Labels())
	assert.Equal(t, 5, set.IndexOfLabel("over 5 minutes"))
	assert.Equal(t, -1, set.IndexOfLabel("missing"))
	assert.Panics(t, func() { MinuteBuckets(0) })
}

func TestNewBucketSet_RejectsInvalidPartitions(t *testing.T) {
	t.Parallel()

	inf := math.Inf(1)
	tests := []struct {
		name    string
		buckets []Bucket
	}{
		{name: "empty", buckets: nil},
		{name: "non-zero origin", buckets: []Bucket{{Label: "a", Min: 1, Max: inf}}},
		{name: "gap", buckets: []Bucket{{Label: "a", Min: 0, Max: 1}, {Label: "b", Min: 2, Max: inf}}},
		{name: "overlap", buckets: []Bucket{{Label: "a", Min: 0, Max: 2}, {Label: "b", Min: 1, Max: inf}}},
		{name: "bounded last", buckets: []Bucket{{Label: "a", Min: 0, Max: 1}, {Label: "b", Min: 1, Max: 2}}},
		{name: "empty label", buckets: []Bucket{{Label: "", Min: 0, Max: inf}}},
		{name: "duplicate label", buckets: []Bucket{{Label: "a", Min: 0, Max: 1}, {Label: "a", Min: 1, Max: inf}}},
		{name: "inverted", buckets: []Bucket{{Label: "a", Min: 0, Max: 0}, {Label: "b", Min: 0, Max: inf}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			set, err := NewBucketSet(tt.buckets)
			assert.Nil(t, set)
			assert.ErrorIs(t, err, ErrInvalidBucketSet)
		})
	}
}

func TestNewBucketSet_CopiesInput(t *testing.T) {
	t.Parallel()

	input := []Bucket{{Label: "a", Min: 0, Max: 1}, {Label: "b", Min: 1, Max: math.Inf(1)}}
	set, err := NewBucketSet(input)
	require.NoError(t, err)

	input[0].Label = "mutated"
	assert.Equal(t, []string{"a", "b"}, set.Labels())
}
