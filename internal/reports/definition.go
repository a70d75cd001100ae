package reports

import (
	"math"
	"strconv"

	"rx-analytics/internal/aggregators"
	"rx-analytics/internal/models"
	"rx-analytics/internal/queries"
	"rx-analytics/internal/simulators"
)

// Report names.
const (
	DecodeTime    = "decode-time"
	BreakTime     = "break-time"
	CallDuration  = "call-duration"
	StoreDecode   = "store-decode"
	SystemDecode  = "system-decode"
	DecodeByAgent = "decode-client"
)

// Definition instantiates the shared aggregation engine for one report: which events it reads,
// how it keys and buckets them, what a client may filter on, and how the live simulator feeds it.
type Definition struct {
	Name          string
	Title         string
	Kind          models.EventKind
	Aggregator    *aggregators.Aggregator
	PayloadLabels []string
	Filters       []queries.FieldSpec
	Cascades      []queries.Cascade
	// LiveMode is empty for reports the simulator does not feed.
	LiveMode simulators.Mode
	// AcceptsOnBreakHint marks reports whose views may steer the on-break count.
	AcceptsOnBreakHint bool
}

func (d Definition) FieldSpec(name string) (queries.FieldSpec, bool) {
	for _, spec := range d.Filters {
		if spec.Name == name {
			return spec, true
		}
	}
	return queries.FieldSpec{}, false
}

// ParentOf returns the cascade whose child is field.
func (d Definition) ParentOf(field string) (queries.Cascade, bool) {
	for _, cascade := range d.Cascades {
		if cascade.Child == field {
			return cascade, true
		}
	}
	return queries.Cascade{}, false
}

func (d Definition) DimensionLabels() []string {
	dims := d.Aggregator.Keys().Dimensions()
	labels := make([]string, len(dims))
	for i, dim := range dims {
		labels[i] = dim.Label
	}
	return labels
}

// ThresholdLabel names the lower bound of the first above-threshold bucket, e.g. "5 minutes".
func (d Definition) ThresholdLabel() string {
	buckets := d.Aggregator.Buckets().Buckets()
	threshold := d.Aggregator.Threshold()
	if threshold < 0 || threshold >= len(buckets) {
		return "threshold"
	}
	return strconv.FormatFloat(buckets[threshold].Min, 'f', -1, 64) + " minutes"
}

func (d Definition) Live() bool {
	return d.LiveMode != ""
}

// keyPositions maps each tag that is a key dimension to its position in the dimension key.
func (d Definition) keyPositions() map[string]int {
	positions := make(map[string]int)
	for i, dim := range d.Aggregator.Keys().Dimensions() {
		if dim.Tag != "" {
			positions[dim.Tag] = i
		}
	}
	return positions
}

// LiveFilters lists the filters that keep today's live deltas in a result. Live deltas are kept
// per dimension key, so only string filters on key dimensions can select them; any other active
// filter leaves them out and flags the result. Reports not fed by deltas return nil.
func (d Definition) LiveFilters() []string {
	if d.LiveMode != simulators.ModeDeltas {
		return nil
	}
	positions := d.keyPositions()
	fields := make([]string, 0)
	for _, spec := range d.Filters {
		if _, ok := positions[spec.Name]; ok && spec.Kind != queries.KindDay {
			fields = append(fields, spec.Name)
		}
	}
	return fields
}

var (
	employeeFilters = []queries.FieldSpec{
		{Name: models.TagEmployeeID, Label: "Employee ID", Kind: queries.KindSubstring},
		{Name: models.TagEmployeeName, Label: "Employee Name", Kind: queries.KindSubstring},
		{Name: models.TagLocation, Label: "Location", Kind: queries.KindExact},
		{Name: models.TagChannel, Label: "Channel", Kind: queries.KindExact},
	}
	completedOnFilter = queries.FieldSpec{Name: models.FieldCompletedAt, Label: "Completed On", Kind: queries.KindDay}

	breakBuckets = models.MustBucketSet([]models.Bucket{
		{Label: "0-15 minutes", Min: 0, Max: 15},
		{Label: "15-30 minutes", Min: 15, Max: 30},
		{Label: "30-45 minutes", Min: 30, Max: 45},
		{Label: "45-60 minutes", Min: 45, Max: 60},
		{Label: "over 60 minutes", Min: 60, Max: math.Inf(1)},
	})
)

// Catalog returns the built-in report definitions in display order.
func Catalog() []Definition {
	return []Definition{
		{
			Name:       DecodeTime,
			Title:      "Decode Time by Employee",
			Kind:       models.EventDecode,
			Aggregator: aggregators.NewAggregator(DecodeTime, aggregators.KeyByEmployee(), models.MinuteBuckets(10), nil, 5),
			Filters:    append(append([]queries.FieldSpec{}, employeeFilters...), completedOnFilter),
			LiveMode:   simulators.ModeDeltas,
		},
		{
			Name:       BreakTime,
			Title:      "Break Time by Employee",
			Kind:       models.EventBreak,
			Aggregator: aggregators.NewAggregator(BreakTime, aggregators.KeyByEmployee(), breakBuckets, nil, 2),
			Filters: append(append([]queries.FieldSpec{}, employeeFilters...),
				queries.FieldSpec{Name: models.TagStatus, Label: "Status", Kind: queries.KindExact}),
			LiveMode:           simulators.ModeReplaceToday,
			AcceptsOnBreakHint: true,
		},
		{
			Name:       CallDuration,
			Title:      "Call Duration by Location and Channel",
			Kind:       models.EventCall,
			Aggregator: aggregators.NewAggregator(CallDuration, aggregators.KeyByLocationChannel(), models.MinuteBuckets(5), nil, 3),
			Filters: []queries.FieldSpec{
				{Name: models.TagLocation, Label: "Location", Kind: queries.KindExact},
				{Name: models.TagChannel, Label: "Channel", Kind: queries.KindExact},
			},
			LiveMode: simulators.ModeDeltas,
		},
		{
			Name:  StoreDecode,
			Title: "Decode Time by Store",
			Kind:  models.EventDecode,
			Aggregator: aggregators.NewAggregator(StoreDecode, aggregators.KeyByStateCity(), models.MinuteBuckets(5),
				[]string{models.PayloadSaleValue}, 3),
			PayloadLabels: []string{"Sale Value"},
			Filters: []queries.FieldSpec{
				{Name: models.TagState, Label: "State", Kind: queries.KindExact},
				{Name: models.TagCity, Label: "City", Kind: queries.KindExact},
				{Name: models.TagStoreID, Label: "Store ID", Kind: queries.KindSubstring},
			},
			Cascades: []queries.Cascade{{Parent: models.TagState, Child: models.TagCity}},
		},
		{
			Name:  SystemDecode,
			Title: "System Decode Time",
			Kind:  models.EventDecode,
			Aggregator: aggregators.NewAggregator(SystemDecode, aggregators.KeyConstant("All Decodes"), models.MinuteBuckets(10),
				[]string{models.PayloadAccuracy}, 5),
			PayloadLabels: []string{"Accuracy"},
			Filters:       []queries.FieldSpec{completedOnFilter},
		},
		{
			Name:       DecodeByAgent,
			Title:      "Decode Time by Client",
			Kind:       models.EventDecode,
			Aggregator: aggregators.NewAggregator(DecodeByAgent, aggregators.KeyByClient(), models.MinuteBuckets(10), nil, 5),
			Filters: []queries.FieldSpec{
				{Name: models.TagClient, Label: "Client", Kind: queries.KindExact},
			},
		},
	}
}
