package views

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"rx-analytics/internal/reports"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/shared/ulid"
	"rx-analytics/internal/shared/validators"
	"rx-analytics/internal/simulators"
)

// LiveScheduler starts and stops the live simulation feeding a report.
//
//go:generate mockgen -source=service.go -destination=./mocks/service_mock.go -package=mocks
type LiveScheduler interface {
	Acquire(report string) error
	Release(report string) error
	SetOnBreakHint(report string, n int)
}

// Snapshot is a view together with the result it currently shows. Result is nil until the view
// is seeded, and once it is closed.
type Snapshot struct {
	View   *View           `json:"view"`
	Result *reports.Result `json:"result,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Snapshot, error)
	Close(ctx context.Context, id string) (*View, error)
}

type service struct {
	mu        sync.Mutex
	views     map[string]*View
	reports   reports.Service
	scheduler LiveScheduler
	validate  *validators.Validate
	newID     func() string
	clock     func() time.Time
}

func NewService(reportService reports.Service, scheduler LiveScheduler) Service {
	return &service{
		views:     make(map[string]*View),
		reports:   reportService,
		scheduler: scheduler,
		validate:  validators.NewJSON(),
		newID:     ulid.NewULID,
		clock:     time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, errValidationFailed(validationMessage(err), err)
	}
	summary, err := s.reports.Summary(req.Report)
	if err != nil {
		return nil, err
	}
	if req.Live && summary.LiveMode == "" {
		return nil, errLiveNotSupported(req.Report, nil)
	}
	if req.OnBreakHint != nil && !summary.AcceptsOnBreakHint {
		return nil, errHintNotSupported(req.Report)
	}

	now := s.clock()
	view := &View{
		ID:        s.newID(),
		Report:    req.Report,
		State:     StateFresh,
		From:      req.From,
		To:        req.To,
		Filters:   maps.Clone(req.Filters),
		Page:      1,
		PageSize:  req.PageSize,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if view.Filters == nil {
		view.Filters = map[string]string{}
	}
	if req.OnBreakHint != nil {
		hint := *req.OnBreakHint
		view.OnBreakHint = &hint
	}
	if req.From != "" || req.Live {
		if err := view.transition(ActionSeed); err != nil {
			return nil, errInvalidTransition(err)
		}
	}
	if req.Live {
		if err := view.transition(ActionGoLive); err != nil {
			return nil, errInvalidTransition(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.commit(ctx, StateFresh, view, nil)
	if err != nil {
		return nil, err
	}
	loggers.Ctx(ctx).Info().Str(loggers.FieldViewID, view.ID).Str(loggers.FieldReport, view.Report).Str("state", string(view.State)).Msg("view created")
	return snapshot, nil
}

func (s *service) Get(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return nil, errViewNotFound(id)
	}
	if !view.State.Queryable() {
		return &Snapshot{View: view.clone()}, nil
	}

	next := view.clone()
	result, err := s.query(ctx, next, nil)
	if err != nil {
		return nil, err
	}
	s.views[id] = next
	return &Snapshot{View: next.clone(), Result: result}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Snapshot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, errValidationFailed(validationMessage(err), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return nil, errViewNotFound(id)
	}
	if view.State == StateClosed {
		return nil, errInvalidTransition(fmt.Errorf("%w: view is closed", ErrInvalidTransition))
	}
	summary, err := s.reports.Summary(view.Report)
	if err != nil {
		return nil, err
	}

	next := view.clone()
	resetPage := false

	if req.From != nil || req.To != nil {
		if req.From != nil {
			next.From = *req.From
		}
		if req.To != nil {
			next.To = *req.To
		}
		if err := next.transition(ActionSeed); err != nil {
			return nil, errInvalidTransition(err)
		}
		resetPage = true
	}

	var previous map[string]string
	if req.Filters != nil {
		previous = view.Filters
		next.Filters = maps.Clone(req.Filters)
		resetPage = true
	}

	if req.PageSize != nil {
		next.PageSize = *req.PageSize
		resetPage = true
	}

	if req.Live != nil && *req.Live != (next.State == StateLive) {
		action := ActionHistorical
		if *req.Live {
			if summary.LiveMode == "" {
				return nil, errLiveNotSupported(view.Report, nil)
			}
			action = ActionGoLive
		}
		if err := next.transition(action); err != nil {
			return nil, errInvalidTransition(err)
		}
		resetPage = true
	}

	if req.Page != nil {
		next.Page = *req.Page
	}
	if resetPage {
		next.Page = 1
	}

	if req.OnBreakHint != nil {
		if !summary.AcceptsOnBreakHint {
			return nil, errHintNotSupported(view.Report)
		}
		hint := *req.OnBreakHint
		next.OnBreakHint = &hint
	}

	next.UpdatedAt = s.clock()
	return s.commit(ctx, view.State, next, previous)
}

func (s *service) Close(ctx context.Context, id string) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return nil, errViewNotFound(id)
	}

	next := view.clone()
	if err := next.transition(ActionClose); err != nil {
		return nil, errInvalidTransition(err)
	}
	if view.State == StateLive {
		s.release(ctx, view.Report)
	}
	next.UpdatedAt = s.clock()
	s.views[id] = next

	loggers.Ctx(ctx).Info().Str(loggers.FieldViewID, id).Str(loggers.FieldReport, view.Report).Msg("view closed")
	return next.clone(), nil
}

// commit queries next when it is seeded, applies the live and hint side effects implied by moving
// from the previous state, and stores next. Nothing is stored when any step fails. Callers hold
// the lock.
func (s *service) commit(ctx context.Context, from State, next *View, previous map[string]string) (*Snapshot, error) {
	var result *reports.Result
	if next.State.Queryable() {
		var err error
		result, err = s.query(ctx, next, previous)
		if err != nil {
			return nil, err
		}
	}

	if from != StateLive && next.State == StateLive {
		if err := s.scheduler.Acquire(next.Report); err != nil {
			if errors.Is(err, simulators.ErrUnknownTarget) {
				return nil, errLiveNotSupported(next.Report, err)
			}
			return nil, errInternalLiveFailed(err)
		}
	}
	if from == StateLive && next.State != StateLive {
		s.release(ctx, next.Report)
	}
	if next.OnBreakHint != nil {
		s.scheduler.SetOnBreakHint(next.Report, *next.OnBreakHint)
	}

	s.views[next.ID] = next
	return &Snapshot{View: next.clone(), Result: result}, nil
}

func (s *service) query(ctx context.Context, view *View, previous map[string]string) (*reports.Result, error) {
	result, err := s.reports.Query(ctx, view.Report, reports.QueryRequest{
		From:     view.From,
		To:       view.To,
		Filters:  view.Filters,
		Previous: previous,
		Page:     view.Page,
		PageSize: view.PageSize,
		Live:     view.State == StateLive,
	})
	if err != nil {
		return nil, err
	}
	view.Page = result.Page
	view.PageSize = result.PageSize
	view.Filters = maps.Clone(result.Filters)
	if view.Filters == nil {
		view.Filters = map[string]string{}
	}
	return result, nil
}

func (s *service) release(ctx context.Context, report string) {
	if err := s.scheduler.Release(report); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldReport, report).Msg("failed to release live simulation")
	}
}

func validationMessage(err error) string {
	if details := validators.Describe(err); details != "" {
		return "invalid view request: " + details
	}
	return "invalid view request"
}
