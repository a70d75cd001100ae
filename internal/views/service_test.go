package views_test

import (
	"context"
	"errors"
	"testing"

	"rx-analytics/internal/reports"
	reportmocks "rx-analytics/internal/reports/mocks"
	"rx-analytics/internal/shared/svcerrors"
	"rx-analytics/internal/simulators"
	"rx-analytics/internal/views"
	viewmocks "rx-analytics/internal/views/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	decodeSummary = reports.Summary{Name: reports.DecodeTime, LiveMode: simulators.ModeDeltas}
	breakSummary  = reports.Summary{Name: reports.BreakTime, LiveMode: simulators.ModeReplaceToday, AcceptsOnBreakHint: true}
	storeSummary  = reports.Summary{Name: reports.StoreDecode}
)

type fixture struct {
	reports   *reportmocks.MockService
	scheduler *viewmocks.MockLiveScheduler
	svc       views.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		reports:   reportmocks.NewMockService(ctrl),
		scheduler: viewmocks.NewMockLiveScheduler(ctrl),
	}
	f.svc = views.NewService(f.reports, f.scheduler)
	return f
}

// result echoes req back the way the report service would for a small report.
func result(req reports.QueryRequest) *reports.Result {
	page, pageSize := req.Page, req.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	filters := make(map[string]string, len(req.Filters))
	for field, value := range req.Filters {
		if value != "" && value != "ALL" {
			filters[field] = value
		}
	}
	return &reports.Result{From: req.From, To: req.To, Page: page, PageSize: pageSize, Filters: filters, Live: req.Live}
}

func requireServiceError(t *testing.T, err error, code string, status int) {
	t.Helper()
	svcErr, ok := svcerrors.As(err)
	require.True(t, ok, "expected a service error, got %v", err)
	assert.Equal(t, code, svcErr.Code)
	assert.Equal(t, status, svcErr.HttpStatusCode)
}

func (f *fixture) createSeeded(t *testing.T, summary reports.Summary, filters map[string]string) *views.View {
	t.Helper()

	f.reports.EXPECT().Summary(summary.Name).Return(summary, nil)
	f.reports.EXPECT().Query(gomock.Any(), summary.Name, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			return result(req), nil
		})

	snapshot, err := f.svc.Create(context.Background(), views.CreateRequest{
		Report:  summary.Name,
		From:    "2026-10-01",
		To:      "2026-10-14",
		Filters: filters,
	})
	require.NoError(t, err)
	require.Equal(t, views.StateSeeded, snapshot.View.State)
	return snapshot.View
}

func TestService_Create_FreshViewHasNoResult(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil)

	snapshot, err := f.svc.Create(context.Background(), views.CreateRequest{Report: reports.DecodeTime})
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.View.ID)
	assert.Equal(t, views.StateFresh, snapshot.View.State)
	assert.Equal(t, 1, snapshot.View.Page)
	assert.Empty(t, snapshot.View.Filters)
	assert.Nil(t, snapshot.Result)
}

func TestService_Create_Seeded(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, reports.QueryRequest{
		From:    "2026-10-01",
		To:      "2026-10-14",
		Filters: map[string]string{"location": "wfh"},
		Page:    1,
	}).DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
		return result(req), nil
	})

	snapshot, err := f.svc.Create(context.Background(), views.CreateRequest{
		Report:  reports.DecodeTime,
		From:    "2026-10-01",
		To:      "2026-10-14",
		Filters: map[string]string{"location": "wfh"},
	})
	require.NoError(t, err)

	assert.Equal(t, views.StateSeeded, snapshot.View.State)
	assert.Equal(t, 20, snapshot.View.PageSize)
	require.NotNil(t, snapshot.Result)
	assert.Equal(t, "2026-10-01", snapshot.Result.From)
}

func TestService_Create_Live(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			assert.True(t, req.Live)
			return result(req), nil
		})
	f.scheduler.EXPECT().Acquire(reports.DecodeTime).Return(nil)

	snapshot, err := f.svc.Create(context.Background(), views.CreateRequest{Report: reports.DecodeTime, Live: true})
	require.NoError(t, err)

	assert.Equal(t, views.StateLive, snapshot.View.State)
	require.NotNil(t, snapshot.Result)
	assert.True(t, snapshot.Result.Live)
}

func TestService_Create_WithHintSteersSimulation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.BreakTime).Return(breakSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.BreakTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			return result(req), nil
		})
	f.scheduler.EXPECT().Acquire(reports.BreakTime).Return(nil)
	f.scheduler.EXPECT().SetOnBreakHint(reports.BreakTime, 4)

	hint := 4
	snapshot, err := f.svc.Create(context.Background(), views.CreateRequest{Report: reports.BreakTime, Live: true, OnBreakHint: &hint})
	require.NoError(t, err)
	require.NotNil(t, snapshot.View.OnBreakHint)
	assert.Equal(t, 4, *snapshot.View.OnBreakHint)
}

func TestService_Create_Errors(t *testing.T) {
	t.Parallel()

	hint := 3
	negative := -1
	tests := []struct {
		name    string
		req     views.CreateRequest
		summary *reports.Summary
		code    string
		status  int
	}{
		{name: "missing report", req: views.CreateRequest{}, code: "VIEW_1000", status: 400},
		{name: "bad from date", req: views.CreateRequest{Report: reports.DecodeTime, From: "15/10/2026"}, code: "VIEW_1000", status: 400},
		{name: "negative page size", req: views.CreateRequest{Report: reports.DecodeTime, PageSize: -5}, code: "VIEW_1000", status: 400},
		{name: "negative hint", req: views.CreateRequest{Report: reports.BreakTime, OnBreakHint: &negative}, code: "VIEW_1000", status: 400},
		{name: "live without live mode", req: views.CreateRequest{Report: reports.StoreDecode, Live: true}, summary: &storeSummary, code: "VIEW_1001", status: 400},
		{name: "hint on report without hint", req: views.CreateRequest{Report: reports.DecodeTime, OnBreakHint: &hint}, summary: &decodeSummary, code: "VIEW_1002", status: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			if tt.summary != nil {
				f.reports.EXPECT().Summary(tt.req.Report).Return(*tt.summary, nil)
			}

			snapshot, err := f.svc.Create(context.Background(), tt.req)
			assert.Nil(t, snapshot)
			requireServiceError(t, err, tt.code, tt.status)
		})
	}
}

func TestService_Create_UnknownReport(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	notFound := svcerrors.NewNotFoundError("RPT_2000", "report not found", nil)
	f.reports.EXPECT().Summary("nope").Return(reports.Summary{}, notFound)

	_, err := f.svc.Create(context.Background(), views.CreateRequest{Report: "nope"})
	requireServiceError(t, err, "RPT_2000", 404)
}

func TestService_Create_AcquireUnknownTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			return result(req), nil
		})
	f.scheduler.EXPECT().Acquire(reports.DecodeTime).Return(simulators.ErrUnknownTarget)

	_, err := f.svc.Create(context.Background(), views.CreateRequest{Report: reports.DecodeTime, Live: true})
	requireServiceError(t, err, "VIEW_1001", 400)
}

func TestService_Update_FilterChangeResetsPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	view := f.createSeeded(t, storeSummary, map[string]string{"state": "Karnataka", "city": "Bengaluru"})

	f.reports.EXPECT().Summary(reports.StoreDecode).Return(storeSummary, nil).Times(2)
	page := 3
	f.reports.EXPECT().Query(gomock.Any(), reports.StoreDecode, reports.QueryRequest{
		From:     "2026-10-01",
		To:       "2026-10-14",
		Filters:  map[string]string{"state": "Karnataka", "city": "Bengaluru"},
		Page:     3,
		PageSize: 20,
	}).DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
		return result(req), nil
	})
	snapshot, err := f.svc.Update(ctx, view.ID, views.UpdateRequest{Page: &page})
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.View.Page)

	f.reports.EXPECT().Query(gomock.Any(), reports.StoreDecode, reports.QueryRequest{
		From:     "2026-10-01",
		To:       "2026-10-14",
		Filters:  map[string]string{"state": "Telangana", "city": "Bengaluru"},
		Previous: map[string]string{"state": "Karnataka", "city": "Bengaluru"},
		Page:     1,
		PageSize: 20,
	}).Return(&reports.Result{
		Page:     1,
		PageSize: 20,
		Filters:  map[string]string{"state": "Telangana"},
	}, nil)
	snapshot, err = f.svc.Update(ctx, view.ID, views.UpdateRequest{
		Filters: map[string]string{"state": "Telangana", "city": "Bengaluru"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.View.Page)
	assert.Equal(t, map[string]string{"state": "Telangana"}, snapshot.View.Filters)
}

func TestService_Update_FailedQueryKeepsView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	view := f.createSeeded(t, decodeSummary, nil)

	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("RPT_1001", "unknown filter field", nil))

	_, err := f.svc.Update(ctx, view.ID, views.UpdateRequest{Filters: map[string]string{"city": "Pune"}})
	requireServiceError(t, err, "RPT_1001", 400)

	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			assert.Empty(t, req.Filters)
			return result(req), nil
		})
	snapshot, err := f.svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.View.Filters)
}

func TestService_Update_GoLiveAndBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	view := f.createSeeded(t, decodeSummary, nil)

	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil).Times(2)
	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			return result(req), nil
		}).Times(2)

	live := true
	f.scheduler.EXPECT().Acquire(reports.DecodeTime).Return(nil)
	snapshot, err := f.svc.Update(ctx, view.ID, views.UpdateRequest{Live: &live})
	require.NoError(t, err)
	assert.Equal(t, views.StateLive, snapshot.View.State)
	assert.True(t, snapshot.Result.Live)

	// picking a date range leaves live mode
	from := "2026-10-05"
	f.scheduler.EXPECT().Release(reports.DecodeTime).Return(nil)
	snapshot, err = f.svc.Update(ctx, view.ID, views.UpdateRequest{From: &from})
	require.NoError(t, err)
	assert.Equal(t, views.StateSeeded, snapshot.View.State)
	assert.Equal(t, "2026-10-05", snapshot.View.From)
	assert.False(t, snapshot.Result.Live)
}

func TestService_Update_LiveOnFreshViewConflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil).Times(2)

	snapshot, err := f.svc.Create(ctx, views.CreateRequest{Report: reports.DecodeTime})
	require.NoError(t, err)

	live := true
	_, err = f.svc.Update(ctx, snapshot.View.ID, views.UpdateRequest{Live: &live})
	requireServiceError(t, err, "VIEW_3000", 409)
	assert.True(t, errors.Is(err, views.ErrInvalidTransition))
}

func TestService_Update_Hint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	view := f.createSeeded(t, breakSummary, nil)

	f.reports.EXPECT().Summary(reports.BreakTime).Return(breakSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.BreakTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			return result(req), nil
		})
	f.scheduler.EXPECT().SetOnBreakHint(reports.BreakTime, 7)

	hint := 7
	snapshot, err := f.svc.Update(ctx, view.ID, views.UpdateRequest{OnBreakHint: &hint})
	require.NoError(t, err)
	assert.Equal(t, 7, *snapshot.View.OnBreakHint)
}

func TestService_Update_InvalidRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	page := 0
	_, err := f.svc.Update(context.Background(), "any", views.UpdateRequest{Page: &page})
	requireServiceError(t, err, "VIEW_1000", 400)
}

func TestService_CloseLiveView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.reports.EXPECT().Summary(reports.DecodeTime).Return(decodeSummary, nil)
	f.reports.EXPECT().Query(gomock.Any(), reports.DecodeTime, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req reports.QueryRequest) (*reports.Result, error) {
			return result(req), nil
		})
	f.scheduler.EXPECT().Acquire(reports.DecodeTime).Return(nil)
	f.scheduler.EXPECT().Release(reports.DecodeTime).Return(nil)

	snapshot, err := f.svc.Create(ctx, views.CreateRequest{Report: reports.DecodeTime, Live: true})
	require.NoError(t, err)

	closed, err := f.svc.Close(ctx, snapshot.View.ID)
	require.NoError(t, err)
	assert.Equal(t, views.StateClosed, closed.State)

	got, err := f.svc.Get(ctx, snapshot.View.ID)
	require.NoError(t, err)
	assert.Equal(t, views.StateClosed, got.View.State)
	assert.Nil(t, got.Result)

	_, err = f.svc.Close(ctx, snapshot.View.ID)
	requireServiceError(t, err, "VIEW_3000", 409)

	page := 2
	_, err = f.svc.Update(ctx, snapshot.View.ID, views.UpdateRequest{Page: &page})
	requireServiceError(t, err, "VIEW_3000", 409)
}

func TestService_UnknownView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Get(ctx, "missing")
	requireServiceError(t, err, "VIEW_2000", 404)

	_, err = f.svc.Update(ctx, "missing", views.UpdateRequest{})
	requireServiceError(t, err, "VIEW_2000", 404)

	_, err = f.svc.Close(ctx, "missing")
	requireServiceError(t, err, "VIEW_2000", 404)
}
