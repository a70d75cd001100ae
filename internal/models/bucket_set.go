package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrInvalidBucketSet = errors.New("invalid bucket set")
)

// Bucket is the half-open duration interval [Min, Max) in minutes. The overflow bucket has
// Max = +Inf.
type Bucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// BucketSet is an ordered partition of [0, +Inf) into labeled buckets.
type BucketSet struct {
	buckets []Bucket
}

// NewBucketSet validates that buckets start at 0, are contiguous and non-overlapping, end in an
// unbounded bucket, and carry unique non-empty labels.
func NewBucketSet(buckets []Bucket) (*BucketSet, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: no buckets", ErrInvalidBucketSet)
	}
	if buckets[0].Min != 0 {
		return nil, fmt.Errorf("%w: first bucket starts at %v, want 0", ErrInvalidBucketSet, buckets[0].Min)
	}
	labels := make(map[string]struct{}, len(buckets))
	for i, b := range buckets {
		if b.Label == "" {
			return nil, fmt.Errorf("%w: bucket %d has no label", ErrInvalidBucketSet, i)
		}
		if _, dup := labels[b.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidBucketSet, b.Label)
		}
		labels[b.Label] = struct{}{}
		if math.IsNaN(b.Min) || math.IsNaN(b.Max) || !(b.Min < b.Max) {
			return nil, fmt.Errorf("%w: bucket %q has min %v >= max %v", ErrInvalidBucketSet, b.Label, b.Min, b.Max)
		}
		if i > 0 && buckets[i-1].Max != b.Min {
			return nil, fmt.Errorf("%w: gap or overlap between %q and %q", ErrInvalidBucketSet, buckets[i-1].Label, b.Label)
		}
	}
	if last := buckets[len(buckets)-1]; !math.IsInf(last.Max, 1) {
		return nil, fmt.Errorf("%w: last bucket %q is bounded", ErrInvalidBucketSet, last.Label)
	}

	copied := make([]Bucket, len(buckets))
	copy(copied, buckets)
	return &BucketSet{buckets: copied}, nil
}

// MustBucketSet is NewBucketSet for package-level report definitions.
func MustBucketSet(buckets []Bucket) *BucketSet {
	set, err := NewBucketSet(buckets)
	if err != nil {
		panic(err)
	}
	return set
}

// MinuteBuckets builds minute-wide bins from 0 to cutoff followed by "over <cutoff> minutes".
func MinuteBuckets(cutoff int) *BucketSet {
	if cutoff < 1 {
		panic(fmt.Sprintf("invalid minute bucket cutoff: %d", cutoff))
	}
	buckets := make([]Bucket, 0, cutoff+1)
	for i := 0; i < cutoff; i++ {
		buckets = append(buckets, Bucket{
			Label: fmt.Sprintf("%d-%d minutes", i, i+1),
			Min:   float64(i),
			Max:   float64(i + 1),
		})
	}
	buckets = append(buckets, Bucket{
		Label: fmt.Sprintf("over %d minutes", cutoff),
		Min:   float64(cutoff),
		Max:   math.Inf(1),
	})
	return MustBucketSet(buckets)
}

func (s *BucketSet) Len() int {
	return len(s.buckets)
}

func (s *BucketSet) Buckets() []Bucket {
	out := make([]Bucket, len(s.buckets))
	copy(out, s.buckets)
	return out
}

func (s *BucketSet) Labels() []string {
	labels := make([]string, len(s.buckets))
	for i, b := range s.buckets {
		labels[i] = b.Label
	}
	return labels
}

// IndexOfLabel returns the position of label, or -1.
func (s *BucketSet) IndexOfLabel(label string) int {
	for i, b := range s.buckets {
		if b.Label == label {
			return i
		}
	}
	return -1
}

// Index returns the bucket holding minutes. A value equal to a bucket's Max belongs to the next
// bucket. Negative and non-finite values are rejected.
func (s *BucketSet) Index(minutes float64) (int, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return -1, fmt.Errorf("%w: %v is not finite", ErrInvalidDuration, minutes)
	}
	if minutes < 0 {
		return -1, fmt.Errorf("%w: %v is negative", ErrInvalidDuration, minutes)
	}
	// first bucket whose exclusive Max is above minutes; the +Inf overflow guarantees a hit
	return sort.Search(len(s.buckets), func(i int) bool {
		return minutes < s.buckets[i].Max
	}), nil
}

func (s *BucketSet) Label(minutes float64) (string, error) {
	idx, err := s.Index(minutes)
	if err != nil {
		return "", err
	}
	return s.buckets[idx].Label, nil
}
