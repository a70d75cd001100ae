package exports

import (
	"fmt"
	"strconv"

	"rx-analytics/internal/models"
)

const (
	ColumnTotal      = "Total"
	ColumnPercentage = "Percentage"
)

// Sheet is the tabular projection of one report result. Column order and labels are fixed by the
// report definition, never by the data, so consumers can rely on them across exports.
type Sheet struct {
	Report          string
	DimensionLabels []string
	BucketLabels    []string
	ThresholdLabel  string
	PayloadLabels   []string
	Rows            []models.AggregateRow
	GrandTotal      models.AggregateRow
}

// Columns returns the header: dimension labels, bucket labels, Total, the above-threshold count,
// Percentage, then one column per payload sum.
func (s Sheet) Columns() []string {
	columns := make([]string, 0, len(s.DimensionLabels)+len(s.BucketLabels)+3+len(s.PayloadLabels))
	columns = append(columns, s.DimensionLabels...)
	columns = append(columns, s.BucketLabels...)
	columns = append(columns, ColumnTotal, AboveColumn(s.ThresholdLabel), ColumnPercentage)
	columns = append(columns, s.PayloadLabels...)
	return columns
}

// Records returns one record per row followed by the Grand Total record.
func (s Sheet) Records() [][]string {
	records := make([][]string, 0, len(s.Rows)+1)
	for _, row := range s.Rows {
		records = append(records, s.record(row.Key.Values(), row))
	}

	totalKey := make([]string, len(s.DimensionLabels))
	if len(totalKey) > 0 {
		totalKey[0] = models.GrandTotalKey
	}
	return append(records, s.record(totalKey, s.GrandTotal))
}

func (s Sheet) record(key []string, row models.AggregateRow) []string {
	record := make([]string, 0, len(s.Columns()))
	for i := range s.DimensionLabels {
		value := ""
		if i < len(key) {
			value = key[i]
		}
		record = append(record, value)
	}
	for i := range s.BucketLabels {
		var count int64
		if i < len(row.Vector.Counts) {
			count = row.Vector.Counts[i]
		}
		record = append(record, strconv.FormatInt(count, 10))
	}
	record = append(record,
		strconv.FormatInt(row.Total, 10),
		strconv.FormatInt(row.AboveThreshold, 10),
		FormatPercentage(row.Percentage),
	)
	for i := range s.PayloadLabels {
		value := "0.00"
		if i < len(row.Vector.Sums) {
			value = row.Vector.Sums[i].StringFixed(2)
		}
		record = append(record, value)
	}
	return record
}

// AboveColumn names the above-threshold count column.
func AboveColumn(thresholdLabel string) string {
	return thresholdLabel + " and above"
}

// FormatPercentage renders p as "NN.NN%".
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
