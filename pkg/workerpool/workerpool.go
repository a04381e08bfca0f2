// Package workerpool runs indexed work on a bounded number of goroutines.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Each calls fn for every index in [0, n) on at most workers goroutines. The first error
// cancels the context seen by the remaining calls and is returned. Cancellation of ctx by
// the caller yields its error.
func Each(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		next atomic.Int64
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				if err := fn(ctx, i); err != nil {
					cancel(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	return context.Cause(ctx)
}

// Map applies fn to every item and returns the results in input order.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	err := Each(ctx, workers, len(items), func(ctx context.Context, i int) error {
		r, err := fn(ctx, items[i])
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
