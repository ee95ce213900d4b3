// Package tasks runs fire-and-forget background work (broadcasts, event
// publishing) so that shutdown can wait for it and failures are logged.
package tasks

import (
	"context"
	"errors"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
	"lobby-service/internal/metrics"
	"sync"
)

var ErrShutdown = errors.New("task runner is shut down")

type Runner struct {
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	// mu orders Go against Shutdown so no task is added once waiting starts.
	mu     sync.RWMutex
	closed bool
}

func NewRunner(logger *zap.SugaredLogger, m *metrics.Metrics) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		logger:  logger,
		metrics: m,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Go runs fn in the background. The context passed to fn is cancelled when a
// shutdown runs out of time. Errors and panics are logged, never propagated.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrShutdown
	}

	inFlight := r.metrics.TasksInFlight.WithLabelValues(name)
	inFlight.Inc()

	r.wg.Go(func() {
		defer inFlight.Dec()

		var err error
		var pc panics.Catcher
		pc.Try(func() {
			err = fn(r.ctx)
		})

		if recovered := pc.Recovered(); recovered != nil {
			r.metrics.TaskFailures.WithLabelValues(name, "panic").Inc()
			r.logger.Errorw("background task panicked", "task", name, "panic", recovered.Value, "stack", string(recovered.Stack))
			return
		}
		if err != nil {
			r.metrics.TaskFailures.WithLabelValues(name, "error").Inc()
			r.logger.Errorw("background task failed", "task", name, "error", err)
		}
	})
	return nil
}

// Shutdown stops accepting tasks and waits for running ones. If ctx is done
// first, running tasks are cancelled and ctx.Err() is returned.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}

// Drain waits for all running tasks without cancelling them. Intended for tests.
func (r *Runner) Drain() {
	r.wg.Wait()
}
