package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mercado/internal/worker"
)

type stubLedger struct {
	sweeps  atomic.Int64
	removed int64
	err     error
}

func (s *stubLedger) RemoveStale(_ context.Context, _ time.Time) (int64, error) {
	s.sweeps.Add(1)

	if s.err != nil {
		return 0, s.err
	}

	return s.removed, nil
}

func TestRunSweepsOnInterval(t *testing.T) {
	rq := require.New(t)

	led := &stubLedger{removed: 3}
	cleaner := worker.NewStaleSaleCleaner(led).WithInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- cleaner.Run(ctx)
	}()

	// The first sweep fires immediately, later ones on the interval.
	rq.Eventually(func() bool {
		return led.sweeps.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	rq.ErrorIs(<-done, context.Canceled)
}

func TestRunStopsOnPersistenceFailure(t *testing.T) {
	rq := require.New(t)

	sweepErr := errors.New("connection refused")
	led := &stubLedger{err: sweepErr}
	cleaner := worker.NewStaleSaleCleaner(led).WithInterval(10 * time.Millisecond)

	err := cleaner.Run(context.Background())
	rq.ErrorIs(err, sweepErr)
	rq.Equal(int64(1), led.sweeps.Load())
}

func TestStartStopLifecycle(t *testing.T) {
	rq := require.New(t)

	led := &stubLedger{}
	cleaner := worker.NewStaleSaleCleaner(led).WithInterval(10 * time.Millisecond)

	rq.False(cleaner.IsRunning())

	rq.NoError(cleaner.Start(context.Background()))
	rq.True(cleaner.IsRunning())

	// A second start while running is refused.
	rq.Error(cleaner.Start(context.Background()))

	cleaner.Stop()
	rq.False(cleaner.IsRunning())

	rq.GreaterOrEqual(led.sweeps.Load(), int64(1))

	// The cleaner can be started again after a clean stop.
	rq.NoError(cleaner.Start(context.Background()))
	cleaner.Stop()
	rq.False(cleaner.IsRunning())
}
