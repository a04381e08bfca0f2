package enrichment

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/multichain-client/pkg/batcher"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
	"go.uber.org/zap"
)

// Recorder stores the outputs of transactions it sees into a Sink in batches.
type Recorder struct {
	batcher *batcher.Batcher[Output]
}

// NewRecorder constructs a Recorder; call Start before Record and Stop to flush.
func NewRecorder(sink Sink, metrics Metrics, logger *zap.Logger, opts batcher.Options) *Recorder {
	return &Recorder{
		batcher: batcher.New[Output](
			logger.Named("recorder"),
			sink.InsertOutputs,
			func(batch int, err error) { metrics.ObserveRecord(err, batch) },
			opts,
		),
	}
}

// Start begins background flushing.
func (r *Recorder) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop flushes queued outputs and stops background flushing.
func (r *Recorder) Stop() {
	r.batcher.Stop()
}

// Record queues the outputs of tx.
func (r *Recorder) Record(ctx context.Context, tx *transaction.UtxoTransaction) error {
	for _, out := range OutputsOf(tx) {
		if err := r.batcher.Add(ctx, out); err != nil {
			return fmt.Errorf("record output %s:%d: %w", out.TxID, out.Index, err)
		}
	}
	return nil
}
