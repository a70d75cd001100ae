package simulators

import (
	"context"
	"time"

	"rx-analytics/internal/shared/loggers"
)

//go:generate mockgen -source=tick_service.go -destination=./mocks/tick_service_mock.go -package=mocks
type TickSink interface {
	ApplyTick(ctx context.Context, tick Tick) error
}

// TickService emits one tick per interval for a single report until its context ends.
type TickService struct {
	target    Target
	generator *Generator
	sink      TickSink
	interval  time.Duration
	clock     func() time.Time
	logger    loggers.Logger
}

func NewTickService(target Target, generator *Generator, sink TickSink, interval time.Duration, logger loggers.Logger) *TickService {
	return &TickService{
		target:    target,
		generator: generator,
		sink:      sink,
		interval:  interval,
		clock:     time.Now,
		logger:    logger.With().Str(loggers.FieldReport, target.Report).Logger(),
	}
}

// Serve implements suture.Service.
func (s *TickService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	ctx = s.logger.WithContext(ctx)
	s.logger.Debug().Str("mode", string(s.target.Mode)).Dur("interval", s.interval).Msg("Live ticks started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("Live ticks stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *TickService) tick(ctx context.Context) {
	tick := s.generator.Next(s.target, s.clock())
	metricGeneratedEventsTotal.WithLabelValues(s.target.Report).Add(float64(len(tick.Events)))

	if err := s.sink.ApplyTick(ctx, tick); err != nil {
		metricTicksTotal.WithLabelValues(s.target.Report, string(tick.Mode), "failed").Inc()
		s.logger.Warn().Err(err).Int("events", len(tick.Events)).Msg("Failed to apply live tick")
		return
	}
	metricTicksTotal.WithLabelValues(s.target.Report, string(tick.Mode), "ok").Inc()
}

// String implements fmt.Stringer. Suture uses it to name the service in events.
func (s *TickService) String() string {
	return "live-ticks-" + s.target.Report
}
