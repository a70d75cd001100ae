package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"rx-analytics/internal/aggregators"
	"rx-analytics/internal/events"
	"rx-analytics/internal/exports"
	"rx-analytics/internal/models"
	"rx-analytics/internal/queries"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/shared/metrics"
	"rx-analytics/internal/shared/svcerrors"
	"rx-analytics/internal/simulators"
	"rx-analytics/internal/stores"
)

const (
	defaultPageSize      = 20
	defaultMaxPageSize   = 500
	defaultRetentionDays = 35
	exportFileExtension  = ".csv"
)

// Config tunes query defaults and live state retention.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
	RetentionDays   int
	Location        *time.Location
}

// QueryRequest selects what a report query returns.
type QueryRequest struct {
	From    string
	To      string
	Filters map[string]string
	// Previous holds the filters the client displayed before this request. When set, cascaded
	// child filters invalidated by a parent change are reset to the wildcard.
	Previous map[string]string
	Page     int
	PageSize int
	// Live pins the date range to today.
	Live bool
}

// SavedExport describes an export written to file storage.
type SavedExport struct {
	Report    string    `json:"report"`
	File      string    `json:"file"`
	Key       string    `json:"key"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"createdAt"`
}

//go:generate mockgen -source=service.go -destination=./mocks/service_mock.go -package=mocks
type Service interface {
	Catalog() []Summary
	Summary(report string) (Summary, error)
	Query(ctx context.Context, report string, req QueryRequest) (*Result, error)
	Options(ctx context.Context, report, field string, filters map[string]string) ([]string, error)
	// Export streams the whole result, unpaginated, as CSV.
	Export(ctx context.Context, report string, req QueryRequest, w io.Writer) error
	SaveExport(ctx context.Context, report string, req QueryRequest) (*SavedExport, error)
	OpenExport(ctx context.Context, report, file string) (io.ReadCloser, error)
	ListExports(ctx context.Context, report string) ([]SavedExport, error)
	Ingest(ctx context.Context, event *events.IngestedEvent) *svcerrors.ServiceError
	ApplyTick(ctx context.Context, tick simulators.Tick) error
	Seed(ctx context.Context, report string, events []*models.Event) (int, error)
	// ReportsFor lists, in catalog order, the reports reading events of kind.
	ReportsFor(kind models.EventKind) []string
	LiveTargets() []simulators.Target
}

type service struct {
	reports     map[string]*Report
	order       []string
	exportStore stores.ExportStore
	config      Config
	clock       func() time.Time
}

func NewService(definitions []Definition, exportStore stores.ExportStore, config Config) Service {
	if config.DefaultPageSize <= 0 {
		config.DefaultPageSize = defaultPageSize
	}
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = defaultMaxPageSize
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = defaultRetentionDays
	}
	if config.Location == nil {
		config.Location = time.UTC
	}

	s := &service{
		reports:     make(map[string]*Report, len(definitions)),
		order:       make([]string, 0, len(definitions)),
		exportStore: exportStore,
		config:      config,
		clock:       time.Now,
	}
	for _, def := range definitions {
		s.reports[def.Name] = NewReport(def, config.Location, config.RetentionDays)
		s.order = append(s.order, def.Name)
	}
	return s
}

func (s *service) report(name string) (*Report, *svcerrors.ServiceError) {
	report, ok := s.reports[name]
	if !ok {
		return nil, errReportNotFound(name)
	}
	return report, nil
}

func (s *service) Catalog() []Summary {
	out := make([]Summary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, summarize(s.reports[name].Definition()))
	}
	return out
}

func (s *service) Summary(name string) (Summary, error) {
	report, svcErr := s.report(name)
	if svcErr != nil {
		return Summary{}, svcErr
	}
	return summarize(report.Definition()), nil
}

func (s *service) Query(ctx context.Context, name string, req QueryRequest) (*Result, error) {
	start := time.Now()
	result, svcErr := s.query(ctx, name, req)

	code := metrics.ValueNoError
	if svcErr != nil {
		code = svcErr.Code
	}
	metricQueryDuration.WithLabelValues(name, code).Observe(time.Since(start).Seconds())

	if svcErr != nil {
		return nil, svcErr
	}
	return result, nil
}

func (s *service) query(ctx context.Context, name string, req QueryRequest) (*Result, *svcerrors.ServiceError) {
	report, svcErr := s.report(name)
	if svcErr != nil {
		return nil, svcErr
	}

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = s.config.DefaultPageSize
	}
	if pageSize < 1 || pageSize > s.config.MaxPageSize {
		return nil, errInvalidPageSize(s.config.MaxPageSize, fmt.Errorf("%w: %d", queries.ErrInvalidPageSize, pageSize))
	}

	evaluation, dateRange, svcErr := s.evaluate(ctx, report, req)
	if svcErr != nil {
		return nil, svcErr
	}

	page, err := queries.Paginate(evaluation.Rows, pageSize, req.Page)
	if err != nil {
		return nil, errInvalidPageSize(s.config.MaxPageSize, err)
	}

	def := report.Definition()
	rows := make([]Row, 0, len(page.Rows))
	for _, row := range page.Rows {
		rows = append(rows, newRow(def, row.Key.Values(), row))
	}

	result := &Result{
		Report:         def.Name,
		Title:          def.Title,
		Columns:        newSheet(def, evaluation).Columns(),
		Dimensions:     def.DimensionLabels(),
		Buckets:        def.Aggregator.Buckets().Labels(),
		ThresholdLabel: def.ThresholdLabel(),
		Rows:           rows,
		GrandTotal:     newRow(def, []string{models.GrandTotalKey}, evaluation.GrandTotal),
		Page:           page.PageNumber,
		PageSize:       page.PageSize,
		TotalPages:     page.TotalPages,
		TotalRows:      page.TotalRows,
		Filters:        evaluation.Filters.Values(),
		Resets:         evaluation.Resets,
		Live:           req.Live,
		LiveExcluded:   evaluation.LiveExcluded,
	}
	if !dateRange.IsEmpty() {
		result.From = dateRange.From.Format(models.DayLayout)
		result.To = dateRange.To.Format(models.DayLayout)
	}
	return result, nil
}

func (s *service) evaluate(ctx context.Context, report *Report, req QueryRequest) (*Evaluation, models.DateRange, *svcerrors.ServiceError) {
	def := report.Definition()

	var dateRange models.DateRange
	if req.Live {
		dateRange = models.SingleDay(s.clock().In(s.config.Location))
	} else {
		var err error
		dateRange, err = models.ParseDateRange(req.From, req.To, s.config.Location)
		if err != nil {
			return nil, dateRange, errInvalidDate(err)
		}
	}

	filters, svcErr := s.parseFilters(def, req.Filters)
	if svcErr != nil {
		return nil, dateRange, svcErr
	}
	var previous *queries.FilterSet
	if req.Previous != nil {
		parsed, svcErr := s.parseFilters(def, req.Previous)
		if svcErr != nil {
			return nil, dateRange, svcErr
		}
		previous = &parsed
	}

	evaluation, err := report.Evaluate(ctx, dateRange, filters, previous)
	if err != nil {
		return nil, dateRange, errInternalAggregationFailed(err)
	}
	for _, reset := range evaluation.Resets {
		metricCascadeResetsTotal.WithLabelValues(def.Name, reset.Field).Inc()
	}
	return evaluation, dateRange, nil
}

func (s *service) parseFilters(def Definition, raw map[string]string) (queries.FilterSet, *svcerrors.ServiceError) {
	predicates := make([]queries.Predicate, 0, len(raw))
	for field, value := range raw {
		spec, ok := def.FieldSpec(field)
		if !ok {
			return queries.FilterSet{}, errUnknownFilterField(field, queries.ErrUnknownField)
		}
		predicate, err := queries.NewPredicate(spec, value, s.config.Location)
		if err != nil {
			if errors.Is(err, queries.ErrUnknownField) {
				return queries.FilterSet{}, errUnknownFilterField(field, err)
			}
			return queries.FilterSet{}, errInvalidFilterValue(field, err)
		}
		predicates = append(predicates, predicate)
	}
	return queries.NewFilterSet(predicates...), nil
}

func (s *service) Options(ctx context.Context, name, field string, filters map[string]string) ([]string, error) {
	report, svcErr := s.report(name)
	if svcErr != nil {
		return nil, svcErr
	}
	set, svcErr := s.parseFilters(report.Definition(), filters)
	if svcErr != nil {
		return nil, svcErr
	}
	options, err := report.Options(ctx, field, set)
	if err != nil {
		return nil, errUnknownFilterField(field, err)
	}
	return options, nil
}

func (s *service) Export(ctx context.Context, name string, req QueryRequest, w io.Writer) error {
	report, svcErr := s.report(name)
	if svcErr != nil {
		return svcErr
	}
	evaluation, _, svcErr := s.evaluate(ctx, report, req)
	if svcErr != nil {
		return svcErr
	}
	if _, err := exports.WriteCSV(w, newSheet(report.Definition(), evaluation)); err != nil {
		return errInternalExportFailed(err)
	}
	return nil
}

func (s *service) SaveExport(ctx context.Context, name string, req QueryRequest) (*SavedExport, error) {
	var buf bytes.Buffer
	if err := s.Export(ctx, name, req, &buf); err != nil {
		return nil, err
	}
	size := int64(buf.Len())

	createdAt := s.clock()
	key, err := s.exportStore.Put(ctx, name, createdAt, &buf)
	if err != nil {
		return nil, errInternalExportFailed(err)
	}
	loggers.Ctx(ctx).Info().Str(loggers.FieldReport, name).Str("key", key).Int64("bytes", size).Msg("export saved")
	return &SavedExport{Report: name, File: path.Base(key), Key: key, Bytes: size, CreatedAt: createdAt}, nil
}

func (s *service) ListExports(ctx context.Context, name string) ([]SavedExport, error) {
	if _, svcErr := s.report(name); svcErr != nil {
		return nil, svcErr
	}
	files, err := s.exportStore.List(ctx, name)
	if err != nil {
		return nil, errInternalExportFailed(err)
	}
	out := make([]SavedExport, 0, len(files))
	for _, file := range files {
		out = append(out, SavedExport{
			Report:    name,
			File:      path.Base(file.Key),
			Key:       file.Key,
			Bytes:     file.Size,
			CreatedAt: file.ModTime,
		})
	}
	return out, nil
}

func (s *service) OpenExport(ctx context.Context, name, file string) (io.ReadCloser, error) {
	if _, svcErr := s.report(name); svcErr != nil {
		return nil, svcErr
	}
	if file == "" || file != path.Base(file) || !strings.HasSuffix(file, exportFileExtension) {
		return nil, errInvalidExportName(fmt.Errorf("file %q", file))
	}

	rc, err := s.exportStore.Get(ctx, s.exportStore.Key(name, file))
	if err != nil {
		if errors.Is(err, stores.ErrExportNotFound) {
			return nil, errExportNotFound(err)
		}
		return nil, errInternalExportFailed(err)
	}
	return rc, nil
}

func (s *service) Ingest(ctx context.Context, msg *events.IngestedEvent) *svcerrors.ServiceError {
	svcErr := s.ingest(ctx, msg)
	code := metrics.ValueNoError
	if svcErr != nil {
		code = svcErr.Code
	}
	metricEventsIngestedTotal.WithLabelValues(msg.Report, code).Inc()
	return svcErr
}

func (s *service) ingest(ctx context.Context, msg *events.IngestedEvent) *svcerrors.ServiceError {
	report, svcErr := s.report(msg.Report)
	if svcErr != nil {
		return svcErr
	}
	if msg.Event == nil {
		return errInvalidEvent(stores.ErrEventWithoutID)
	}

	logger := loggers.Ctx(ctx)
	err := report.Ingest(ctx, msg.Event)
	switch {
	case err == nil:
		logger.Debug().Str(loggers.FieldReport, msg.Report).Str(loggers.FieldEventID, msg.Event.ID).Msg("event stored")
		return nil
	case errors.Is(err, stores.ErrEventAlreadyExist):
		return errDuplicateEvent(err)
	case errors.Is(err, models.ErrInvalidDuration), errors.Is(err, aggregators.ErrInvalidPayload), errors.Is(err, stores.ErrEventWithoutID):
		return errInvalidEvent(err)
	default:
		return errInternalEventStoreFailed(err)
	}
}

func (s *service) ApplyTick(ctx context.Context, tick simulators.Tick) error {
	report, svcErr := s.report(tick.Report)
	if svcErr != nil {
		return svcErr
	}
	return report.ApplyTick(ctx, tick)
}

func (s *service) Seed(ctx context.Context, name string, events []*models.Event) (int, error) {
	report, svcErr := s.report(name)
	if svcErr != nil {
		return 0, svcErr
	}
	return report.Seed(ctx, events), nil
}

func (s *service) ReportsFor(kind models.EventKind) []string {
	out := make([]string, 0)
	for _, name := range s.order {
		if s.reports[name].Definition().Kind == kind {
			out = append(out, name)
		}
	}
	return out
}

func (s *service) LiveTargets() []simulators.Target {
	out := make([]simulators.Target, 0)
	for _, name := range s.order {
		def := s.reports[name].Definition()
		if def.Live() {
			out = append(out, simulators.Target{Report: def.Name, Kind: def.Kind, Mode: def.LiveMode})
		}
	}
	return out
}
