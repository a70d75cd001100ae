package simulators

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rx-analytics/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	ticks map[string]int
	err   error
}

func (s *recordingSink) ApplyTick(_ context.Context, tick Tick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticks == nil {
		s.ticks = make(map[string]int)
	}
	s.ticks[tick.Report]++
	return s.err
}

func (s *recordingSink) count(report string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks[report]
}

func startScheduler(t *testing.T, sink TickSink) *Scheduler {
	t.Helper()

	targets := []Target{
		{Report: "decode-time", Kind: models.EventDecode, Mode: ModeDeltas},
		{Report: "break-time", Kind: models.EventBreak, Mode: ModeReplaceToday},
	}
	scheduler := NewScheduler(newTestGenerator(1, 5), sink, targets, SchedulerConfig{
		Interval:        5 * time.Millisecond,
		ShutdownTimeout: time.Second,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := scheduler.ServeBackground(ctx)
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return scheduler
}

func TestScheduler_AcquireStartsTicks(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	scheduler := startScheduler(t, sink)

	require.NoError(t, scheduler.Acquire("decode-time"))
	assert.Eventually(t, func() bool { return sink.count("decode-time") >= 2 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, sink.count("break-time"))
}

func TestScheduler_LastReleaseStopsTicks(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	scheduler := startScheduler(t, sink)

	require.NoError(t, scheduler.Acquire("decode-time"))
	require.NoError(t, scheduler.Acquire("decode-time"))
	assert.Equal(t, 2, scheduler.Subscribers("decode-time"))

	require.NoError(t, scheduler.Release("decode-time"))
	assert.Equal(t, 1, scheduler.Subscribers("decode-time"))
	before := sink.count("decode-time")
	assert.Eventually(t, func() bool { return sink.count("decode-time") > before }, time.Second, 5*time.Millisecond)

	require.NoError(t, scheduler.Release("decode-time"))
	assert.Zero(t, scheduler.Subscribers("decode-time"))
	stopped := sink.count("decode-time")
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, sink.count("decode-time"))
}

func TestScheduler_FailingSinkKeepsTicking(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{err: errors.New("store unavailable")}
	scheduler := startScheduler(t, sink)

	require.NoError(t, scheduler.Acquire("break-time"))
	assert.Eventually(t, func() bool { return sink.count("break-time") >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_UnknownReport(t *testing.T) {
	t.Parallel()

	scheduler := startScheduler(t, &recordingSink{})

	assert.ErrorIs(t, scheduler.Acquire("store-decode"), ErrUnknownTarget)
	assert.ErrorIs(t, scheduler.Release("decode-time"), ErrNotAcquired)
}

func TestScheduler_SetOnBreakHint(t *testing.T) {
	t.Parallel()

	scheduler := startScheduler(t, &recordingSink{})
	scheduler.SetOnBreakHint("break-time", 4)

	hint, ok := scheduler.generator.OnBreakHint("break-time")
	assert.True(t, ok)
	assert.Equal(t, 4, hint)
}
