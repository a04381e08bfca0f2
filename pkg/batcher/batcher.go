// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Options controls flushing. Zero values fall back to defaults; RPS <= 0 disables rate limiting.
type Options struct {
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
}

const (
	defaultFlushSize     = 1000
	defaultFlushInterval = time.Second
)

// FlushFunc persists one batch.
type FlushFunc[T any] func(context.Context, []T) error

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flush         FlushFunc[T]
	onFlush       func(batch int, err error)
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher. onFlush, when non-nil, observes every flush attempt.
func New[T any](logger *zap.Logger, flush FlushFunc[T], onFlush func(batch int, err error), opts Options) *Batcher[T] {
	if opts.FlushSize <= 0 {
		opts.FlushSize = defaultFlushSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	rl := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		rl = ratelimit.New(opts.RPS)
	}
	return &Batcher[T]{
		logger:        logger,
		flush:         flush,
		onFlush:       onFlush,
		itemsCh:       make(chan T, opts.FlushSize*2),
		flushSize:     opts.FlushSize,
		flushInterval: opts.FlushInterval,
		rl:            rl,
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes whatever is queued and stops the background loop. It is safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return context.Canceled
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)
	for {
		select {
		case <-ctx.Done():
			b.drain(context.WithoutCancel(ctx), buf)
			return
		case <-b.stop:
			b.drain(ctx, buf)
			return
		case item := <-b.itemsCh:
			buf = b.push(ctx, buf, item)
		case <-ticker.C:
			buf = b.send(ctx, buf)
		}
	}
}

// push appends item and sends the buffer once it is full.
func (b *Batcher[T]) push(ctx context.Context, buf []T, item T) []T {
	buf = append(buf, item)
	if len(buf) < b.flushSize {
		return buf
	}
	return b.send(ctx, buf)
}

// drain sends everything still queued in the channel, then the remainder.
func (b *Batcher[T]) drain(ctx context.Context, buf []T) {
	for {
		select {
		case item := <-b.itemsCh:
			buf = b.push(ctx, buf, item)
		default:
			b.send(ctx, buf)
			return
		}
	}
}

// send flushes a non-empty buffer and returns it emptied. Failed batches are reported and
// dropped.
func (b *Batcher[T]) send(ctx context.Context, buf []T) []T {
	if len(buf) == 0 {
		return buf
	}

	b.rl.Take()
	err := b.flush(ctx, buf)
	if err != nil {
		b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
	} else {
		b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
	}
	if b.onFlush != nil {
		b.onFlush(len(buf), err)
	}
	return buf[:0]
}
