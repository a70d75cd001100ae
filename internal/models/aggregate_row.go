package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const GrandTotalKey = "Grand Total"

// Dimension values are joined with a two byte separator. A NUL inside a value is written as
// NUL 0x01, which sorts after the separator, so byte order of the encoding is the tuple order
// of the values and decoding is exact.
const (
	keyEscape    = '\x00'
	keyNUL       = "\x00"
	keySeparator = "\x00\x00"
	keyEscapedNU = "\x00\x01"
)

// DimensionKey is a comparable tuple of dimension values identifying one result row.
type DimensionKey struct {
	encoded string
}

func NewDimensionKey(values ...string) DimensionKey {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(keySeparator)
		}
		b.WriteString(strings.ReplaceAll(v, keyNUL, keyEscapedNU))
	}
	return DimensionKey{encoded: b.String()}
}

func (k DimensionKey) Values() []string {
	values := make([]string, 0, 1)
	var current strings.Builder
	for i := 0; i < len(k.encoded); i++ {
		c := k.encoded[i]
		if c != keyEscape || i+1 >= len(k.encoded) {
			current.WriteByte(c)
			continue
		}
		i++
		if k.encoded[i] == keyEscape {
			values = append(values, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(keyEscape)
	}
	return append(values, current.String())
}

func (k DimensionKey) String() string {
	return strings.Join(k.Values(), " / ")
}

func (k DimensionKey) Less(other DimensionKey) bool {
	return k.encoded < other.encoded
}

// AggregateRow is a key, its bucket vector, and fields derived purely from that vector.
// Rows are built through NewAggregateRow so the derived fields never drift from the counts.
type AggregateRow struct {
	Key            DimensionKey
	Vector         BucketVector
	Total          int64
	AboveThreshold int64
	Percentage     float64
}

// NewAggregateRow derives Total, AboveThreshold (events in bucket threshold and above) and
// Percentage (AboveThreshold/Total*100, or 0 when Total is 0).
func NewAggregateRow(key DimensionKey, vector BucketVector, threshold int) AggregateRow {
	total := vector.Total()
	above := vector.CountFrom(threshold)
	return AggregateRow{
		Key:            key,
		Vector:         vector,
		Total:          total,
		AboveThreshold: above,
		Percentage:     Percentage(above, total),
	}
}

// Percentage returns part/whole*100, 0 for an empty whole.
func Percentage(part, whole int64) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}
	return float64(part) / float64(whole) * 100
}

// Average returns the mean of a payload sum over the row's events, zero for an empty row.
func (r AggregateRow) Average(payload int) decimal.Decimal {
	if r.Total == 0 || payload < 0 || payload >= len(r.Vector.Sums) {
		return decimal.Zero
	}
	return r.Vector.Sums[payload].Div(decimal.NewFromInt(r.Total))
}
