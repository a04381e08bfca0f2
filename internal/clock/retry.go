// Package clock holds context-aware waiting helpers.
package clock

import (
	"context"
	"errors"
	"time"
)

// ErrPermanent marks an error that Retry must not retry. Wrap it with fmt.Errorf("...: %w").
var ErrPermanent = errors.New("permanent failure")

// Retry calls fn up to attempts times, doubling the delay after each failure. It stops early
// on success, on context cancellation, or when fn returns an error wrapping ErrPermanent.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if errors.Is(err, ErrPermanent) || attempt == attempts {
			return err
		}
		if sleepErr := Sleep(ctx, delay); sleepErr != nil {
			return errors.Join(err, sleepErr)
		}
		delay *= 2
	}
	return err
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
