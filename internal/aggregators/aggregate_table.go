package aggregators

import (
	"fmt"
	"sort"

	"rx-analytics/internal/models"

	"github.com/shopspring/decimal"
)

// AggregateTable maps dimension keys to bucket vectors of one fixed shape. The number of keys is
// bounded by the distinct dimension values seen, and vectors never grow.
type AggregateTable struct {
	buckets  int
	payloads int
	vectors  map[models.DimensionKey]*models.BucketVector
}

func NewAggregateTable(buckets, payloads int) *AggregateTable {
	return &AggregateTable{
		buckets:  buckets,
		payloads: payloads,
		vectors:  make(map[models.DimensionKey]*models.BucketVector),
	}
}

func (t *AggregateTable) Len() int {
	return len(t.vectors)
}

// Total is the number of events across all keys.
func (t *AggregateTable) Total() int64 {
	var total int64
	for _, v := range t.vectors {
		total += v.Total()
	}
	return total
}

func (t *AggregateTable) Get(key models.DimensionKey) (models.BucketVector, bool) {
	v, ok := t.vectors[key]
	if !ok {
		return models.BucketVector{}, false
	}
	return v.Clone(), true
}

// Keys returns the keys in ascending order.
func (t *AggregateTable) Keys() []models.DimensionKey {
	keys := make([]models.DimensionKey, 0, len(t.vectors))
	for k := range t.vectors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// add records one resolved event. Callers resolve idx and payloads first so a failure leaves the
// table untouched.
func (t *AggregateTable) add(key models.DimensionKey, idx int, payloads []decimal.Decimal) error {
	vector, exists := t.vectors[key]
	if !exists {
		fresh := models.NewBucketVector(t.buckets, t.payloads)
		vector = &fresh
	}
	if err := vector.Add(idx, payloads); err != nil {
		return err
	}
	if !exists {
		t.vectors[key] = vector
	}
	return nil
}

// Merge mutates t by adding every vector of other element-wise. Vectors are summed, never
// replaced. t is left unmodified when the shapes differ.
func (t *AggregateTable) Merge(other *AggregateTable) error {
	if other == nil {
		return nil
	}
	if t.buckets != other.buckets || t.payloads != other.payloads {
		return fmt.Errorf("%w: table %d/%d, other %d/%d", models.ErrShapeMismatch,
			t.buckets, t.payloads, other.buckets, other.payloads)
	}
	for key, v := range other.vectors {
		if existing, ok := t.vectors[key]; ok {
			if err := existing.Merge(*v); err != nil {
				return err
			}
			continue
		}
		cloned := v.Clone()
		t.vectors[key] = &cloned
	}
	return nil
}

// Filter returns a copy holding only the keys keep accepts.
func (t *AggregateTable) Filter(keep func(models.DimensionKey) bool) *AggregateTable {
	out := NewAggregateTable(t.buckets, t.payloads)
	for key, v := range t.vectors {
		if keep(key) {
			cloned := v.Clone()
			out.vectors[key] = &cloned
		}
	}
	return out
}

func (t *AggregateTable) Clone() *AggregateTable {
	return t.Filter(func(models.DimensionKey) bool { return true })
}
