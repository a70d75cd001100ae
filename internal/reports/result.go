package reports

import (
	"rx-analytics/internal/exports"
	"rx-analytics/internal/models"
	"rx-analytics/internal/queries"
	"rx-analytics/internal/simulators"
)

// Row is the client-facing rendition of an aggregate row.
type Row struct {
	Key             []string          `json:"key"`
	Counts          []int64           `json:"counts"`
	Sums            map[string]string `json:"sums,omitempty"`
	Total           int64             `json:"total"`
	AboveThreshold  int64             `json:"aboveThreshold"`
	Percentage      float64           `json:"percentage"`
	PercentageLabel string            `json:"percentageLabel"`
}

// Result is one page of a report query.
type Result struct {
	Report         string            `json:"report"`
	Title          string            `json:"title"`
	From           string            `json:"from,omitempty"`
	To             string            `json:"to,omitempty"`
	Columns        []string          `json:"columns"`
	Dimensions     []string          `json:"dimensions"`
	Buckets        []string          `json:"buckets"`
	ThresholdLabel string            `json:"thresholdLabel"`
	Rows           []Row             `json:"rows"`
	GrandTotal     Row               `json:"grandTotal"`
	Page           int               `json:"page"`
	PageSize       int               `json:"pageSize"`
	TotalPages     int               `json:"totalPages"`
	TotalRows      int               `json:"totalRows"`
	Filters        map[string]string `json:"filters"`
	Resets         []queries.Reset   `json:"resets"`
	Live           bool              `json:"live"`
	LiveExcluded   bool              `json:"liveExcluded,omitempty"`
}

// Summary describes a report in the catalog.
type Summary struct {
	Name           string              `json:"name"`
	Title          string              `json:"title"`
	Kind           models.EventKind    `json:"kind"`
	Dimensions     []string            `json:"dimensions"`
	Buckets        []string            `json:"buckets"`
	ThresholdLabel string              `json:"thresholdLabel"`
	Payloads       []string            `json:"payloads,omitempty"`
	Filters        []queries.FieldSpec `json:"filters"`
	Cascades       []queries.Cascade   `json:"cascades,omitempty"`
	LiveMode       simulators.Mode     `json:"liveMode,omitempty"`
	// LiveFilters are the filters under which live deltas stay in results.
	LiveFilters        []string `json:"liveFilters,omitempty"`
	AcceptsOnBreakHint bool     `json:"acceptsOnBreakHint,omitempty"`
}

func summarize(def Definition) Summary {
	return Summary{
		Name:               def.Name,
		Title:              def.Title,
		Kind:               def.Kind,
		Dimensions:         def.DimensionLabels(),
		Buckets:            def.Aggregator.Buckets().Labels(),
		ThresholdLabel:     def.ThresholdLabel(),
		Payloads:           def.PayloadLabels,
		Filters:            def.Filters,
		Cascades:           def.Cascades,
		LiveMode:           def.LiveMode,
		LiveFilters:        def.LiveFilters(),
		AcceptsOnBreakHint: def.AcceptsOnBreakHint,
	}
}

func newRow(def Definition, key []string, row models.AggregateRow) Row {
	out := Row{
		Key:             key,
		Counts:          append([]int64(nil), row.Vector.Counts...),
		Total:           row.Total,
		AboveThreshold:  row.AboveThreshold,
		Percentage:      row.Percentage,
		PercentageLabel: exports.FormatPercentage(row.Percentage),
	}
	fields := def.Aggregator.PayloadFields()
	if len(fields) > 0 {
		out.Sums = make(map[string]string, len(fields))
		for i, field := range fields {
			if i < len(row.Vector.Sums) {
				out.Sums[field] = row.Vector.Sums[i].StringFixed(2)
			}
		}
	}
	return out
}

func newSheet(def Definition, evaluation *Evaluation) exports.Sheet {
	return exports.Sheet{
		Report:          def.Name,
		DimensionLabels: def.DimensionLabels(),
		BucketLabels:    def.Aggregator.Buckets().Labels(),
		ThresholdLabel:  def.ThresholdLabel(),
		PayloadLabels:   def.PayloadLabels,
		Rows:            evaluation.Rows,
		GrandTotal:      evaluation.GrandTotal,
	}
}
