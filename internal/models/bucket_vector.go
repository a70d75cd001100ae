package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrShapeMismatch = errors.New("bucket vector shape mismatch")

// BucketVector holds one count per bucket and one running sum per payload field. Both slices
// have a fixed length decided by the owning report, so applying events never grows it.
type BucketVector struct {
	Counts []int64           `json:"counts"`
	Sums   []decimal.Decimal `json:"sums"`
}

func NewBucketVector(buckets, payloads int) BucketVector {
	sums := make([]decimal.Decimal, payloads)
	for i := range sums {
		sums[i] = decimal.Zero
	}
	return BucketVector{
		Counts: make([]int64, buckets),
		Sums:   sums,
	}
}

// Total is the number of events the vector has absorbed.
func (v BucketVector) Total() int64 {
	var total int64
	for _, c := range v.Counts {
		total += c
	}
	return total
}

// CountFrom sums the counts of buckets at index from and above.
func (v BucketVector) CountFrom(from int) int64 {
	if from < 0 {
		from = 0
	}
	var n int64
	for i := from; i < len(v.Counts); i++ {
		n += v.Counts[i]
	}
	return n
}

func (v BucketVector) SameShape(other BucketVector) bool {
	return len(v.Counts) == len(other.Counts) && len(v.Sums) == len(other.Sums)
}

// Add records one event in bucket idx with the given payload values.
func (v *BucketVector) Add(idx int, payloads []decimal.Decimal) error {
	if idx < 0 || idx >= len(v.Counts) {
		return fmt.Errorf("%w: bucket index %d out of %d", ErrShapeMismatch, idx, len(v.Counts))
	}
	if len(payloads) != len(v.Sums) {
		return fmt.Errorf("%w: %d payloads, want %d", ErrShapeMismatch, len(payloads), len(v.Sums))
	}
	v.Counts[idx]++
	for i, p := range payloads {
		v.Sums[i] = v.Sums[i].Add(p)
	}
	return nil
}

// Merge adds other into v element-wise. v is left untouched on error.
func (v *BucketVector) Merge(other BucketVector) error {
	if !v.SameShape(other) {
		return fmt.Errorf("%w: %d/%d buckets, %d/%d sums", ErrShapeMismatch,
			len(v.Counts), len(other.Counts), len(v.Sums), len(other.Sums))
	}
	for i, c := range other.Counts {
		v.Counts[i] += c
	}
	for i, s := range other.Sums {
		v.Sums[i] = v.Sums[i].Add(s)
	}
	return nil
}

func (v BucketVector) Clone() BucketVector {
	out := BucketVector{
		Counts: make([]int64, len(v.Counts)),
		Sums:   make([]decimal.Decimal, len(v.Sums)),
	}
	copy(out.Counts, v.Counts)
	copy(out.Sums, v.Sums)
	return out
}
