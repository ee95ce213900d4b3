package permission

import (
	"context"
	"golang.org/x/sync/errgroup"
	"sync/atomic"
)

// Check is a single, possibly remote, permission decision.
type Check func(ctx context.Context) (bool, error)

// AnyOf runs the checks concurrently and reports whether any of them allowed.
// The first allowing check cancels the others. A failing check does not cancel
// the rest; its error is only returned when no check allowed.
func AnyOf(ctx context.Context, checks ...Check) (bool, error) {
	if len(checks) == 0 {
		return false, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var allowed atomic.Bool
	var g errgroup.Group

	for _, check := range checks {
		g.Go(func() error {
			ok, err := check(ctx)
			if err != nil {
				return err
			}
			if ok {
				allowed.Store(true)
				cancel()
			}
			return nil
		})
	}

	err := g.Wait()
	if allowed.Load() {
		return true, nil
	}
	return false, err
}
