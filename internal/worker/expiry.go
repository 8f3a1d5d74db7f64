package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mercado/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var salesExpired = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mercado_sales_expired_total",
	Help: "Stale sales removed by the cleanup job.",
})

const defaultSweepInterval = time.Hour

// SaleLedger is the slice of the ledger the cleanup job needs.
type SaleLedger interface {
	RemoveStale(ctx context.Context, now time.Time) (int64, error)
}

// StaleSaleCleaner sweeps expired sales out of the ledger on a fixed
// interval. Two states only: stopped and running. A persistence failure
// during a sweep terminates the loop; recovery is process restart, not
// in-job retry.
type StaleSaleCleaner struct {
	ledger   SaleLedger
	interval time.Duration

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewStaleSaleCleaner(ledger SaleLedger) *StaleSaleCleaner {
	return &StaleSaleCleaner{
		ledger:   ledger,
		interval: defaultSweepInterval,
	}
}

// WithInterval overrides the sweep interval. Used by tests.
func (w *StaleSaleCleaner) WithInterval(interval time.Duration) *StaleSaleCleaner {
	w.interval = interval
	return w
}

// Start launches the sweep loop in the background. Cancellation raised while
// waiting between sweeps is a clean shutdown, not an error.
func (w *StaleSaleCleaner) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("cleaner is already running")
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(sweepCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(sweepCtx).Error("stale sale cleaner stopped", "error", err)
		}
	}()

	return nil
}

// Stop requests cancellation and waits for the loop to acknowledge it.
func (w *StaleSaleCleaner) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *StaleSaleCleaner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Run executes the sweep loop until the context ends or a sweep fails. The
// wait between sweeps is the loop's only suspension point.
func (w *StaleSaleCleaner) Run(ctx context.Context) error {
	logger(ctx).Info("stale sale cleanup started", "interval", w.interval.String())

	for {
		removed, err := w.ledger.RemoveStale(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("remove stale sales: %w", err)
		}

		salesExpired.Add(float64(removed))
		logger(ctx).Info("removed stale sales", "count", removed)

		select {
		case <-time.After(w.interval):
		case <-ctx.Done():
			logger(ctx).Info("stale sale cleanup stopped")
			return ctx.Err()
		}
	}
}
