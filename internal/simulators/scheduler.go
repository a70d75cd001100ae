package simulators

import (
	"context"
	"errors"
	"sync"
	"time"

	"rx-analytics/internal/shared/loggers"

	"github.com/thejerf/suture/v4"
)

var (
	ErrUnknownTarget = errors.New("report has no live simulation")
	ErrNotAcquired   = errors.New("report has no live subscribers")
)

// SchedulerConfig tunes the supervisor that owns live tick services.
type SchedulerConfig struct {
	Interval         time.Duration
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

type lease struct {
	count int
	token suture.ServiceToken
}

// Scheduler runs at most one tick service per report for as long as at least one live view
// holds it. The first Acquire starts the service, the last Release stops it.
type Scheduler struct {
	mu         sync.Mutex
	supervisor *suture.Supervisor
	generator  *Generator
	sink       TickSink
	targets    map[string]Target
	leases     map[string]*lease
	config     SchedulerConfig
	logger     loggers.Logger
}

func NewScheduler(generator *Generator, sink TickSink, targets []Target, config SchedulerConfig, logger loggers.Logger) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = 2 * time.Second
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = 30
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = 5 * time.Second
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 5 * time.Second
	}

	logger = logger.With().Str(loggers.FieldComponent, "live-scheduler").Logger()
	supervisor := suture.New("live-simulation", suture.Spec{
		EventHook:        supervisorEventHook(logger),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	})

	byReport := make(map[string]Target, len(targets))
	for _, target := range targets {
		byReport[target.Report] = target
	}

	return &Scheduler{
		supervisor: supervisor,
		generator:  generator,
		sink:       sink,
		targets:    byReport,
		leases:     make(map[string]*lease),
		config:     config,
		logger:     logger,
	}
}

// ServeBackground starts the supervisor. The returned channel yields its exit error once ctx
// is cancelled.
func (s *Scheduler) ServeBackground(ctx context.Context) <-chan error {
	return s.supervisor.ServeBackground(ctx)
}

// Acquire registers a live subscriber for report.
func (s *Scheduler) Acquire(report string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.targets[report]
	if !ok {
		return ErrUnknownTarget
	}
	if l, ok := s.leases[report]; ok {
		l.count++
		metricLiveSubscribers.WithLabelValues(report).Set(float64(l.count))
		return nil
	}

	service := NewTickService(target, s.generator, s.sink, s.config.Interval, s.logger)
	s.leases[report] = &lease{count: 1, token: s.supervisor.Add(service)}
	metricLiveSubscribers.WithLabelValues(report).Set(1)
	s.logger.Info().Str(loggers.FieldReport, report).Msg("Live simulation started")
	return nil
}

// Release drops one subscriber for report and stops its tick service when none remain.
func (s *Scheduler) Release(report string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leases[report]
	if !ok {
		return ErrNotAcquired
	}
	l.count--
	metricLiveSubscribers.WithLabelValues(report).Set(float64(l.count))
	if l.count > 0 {
		return nil
	}

	delete(s.leases, report)
	if err := s.supervisor.RemoveAndWait(l.token, s.config.ShutdownTimeout); err != nil {
		s.logger.Warn().Err(err).Str(loggers.FieldReport, report).Msg("Live simulation did not stop cleanly")
		return err
	}
	s.logger.Info().Str(loggers.FieldReport, report).Msg("Live simulation stopped")
	return nil
}

// Subscribers reports how many live views currently hold report.
func (s *Scheduler) Subscribers(report string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.leases[report]; ok {
		return l.count
	}
	return 0
}

// SetOnBreakHint forwards a hint to the generator.
func (s *Scheduler) SetOnBreakHint(report string, n int) {
	s.generator.SetOnBreakHint(report, n)
}

func supervisorEventHook(logger loggers.Logger) suture.EventHook {
	return func(e suture.Event) {
		event := logger.Warn()
		for k, v := range e.Map() {
			event = event.Interface(k, v)
		}
		event.Msg(e.String())
	}
}
