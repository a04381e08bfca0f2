package enrichment

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
	"github.com/goodnatureofminers/multichain-client/pkg/workerpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const tracerName = "github.com/goodnatureofminers/multichain-client/internal/enrichment"

// Options tunes source access. Zero values fall back to defaults; RPS <= 0 disables rate
// limiting.
type Options struct {
	Workers   int
	BatchSize int
	RPS       int
}

const (
	defaultWorkers   = 4
	defaultBatchSize = 1000
)

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	return o
}

// Service fills the enrichment of UTXO transactions from a Source.
type Service struct {
	source  Source
	metrics Metrics
	logger  *zap.Logger
	tracer  trace.Tracer
	limiter ratelimit.Limiter
	opts    Options
}

// NewService constructs a Service.
func NewService(source Source, metrics Metrics, logger *zap.Logger, opts Options) *Service {
	opts = opts.withDefaults()
	limiter := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		limiter = ratelimit.New(opts.RPS)
	}
	return &Service{
		source:  source,
		metrics: metrics,
		logger:  logger.Named("enrichment"),
		tracer:  otel.Tracer(tracerName),
		limiter: limiter,
		opts:    opts,
	}
}

// Enrich resolves the missing previous outputs of txs in shared batches and enriches every
// transaction not enriched yet. Outputs no source knows leave their inputs unknown.
func (s *Service) Enrich(ctx context.Context, txs ...*transaction.UtxoTransaction) (err error) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "enrichment.Enrich", trace.WithAttributes(attribute.Int("transactions", len(txs))))
	var missing, unresolved int
	defer func() {
		s.metrics.ObserveEnrich(err, missing, unresolved, started)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	pending := make([]*transaction.UtxoTransaction, 0, len(txs))
	txids := make([]string, 0)
	seen := make(map[string]struct{})
	queued := make(map[*transaction.UtxoTransaction]struct{}, len(txs))
	for _, tx := range txs {
		if tx == nil || tx.IsEnriched() {
			continue
		}
		if _, dup := queued[tx]; dup {
			continue
		}
		queued[tx] = struct{}{}
		pending = append(pending, tx)
		for _, op := range tx.MissingPrevOutputs() {
			missing++
			if _, dup := seen[op.TxID]; dup {
				continue
			}
			seen[op.TxID] = struct{}{}
			txids = append(txids, op.TxID)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	span.SetAttributes(attribute.Int("missing_inputs", missing), attribute.Int("previous_transactions", len(txids)))

	outputs, err := s.resolve(ctx, txids)
	if err != nil {
		return fmt.Errorf("resolve previous outputs: %w", err)
	}

	for _, tx := range pending {
		prev := make(map[int]transaction.PrevOutput)
		for _, op := range tx.MissingPrevOutputs() {
			out, ok := findOutput(outputs[op.TxID], op.Vout)
			if !ok {
				unresolved++
				continue
			}
			prev[op.Index] = out.PrevOutput()
		}
		if err := tx.Enrich(prev); err != nil {
			return fmt.Errorf("enrich tx %s: %w", tx.ID(), err)
		}
		if !tx.IsFullyEnriched() {
			s.logger.Debug("transaction partially enriched",
				zap.String("txid", tx.ID()),
				zap.Int("unresolved", len(tx.MissingPrevOutputs())))
		}
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, txids []string) (map[string][]Output, error) {
	chunks := make([][]string, 0, len(txids)/s.opts.BatchSize+1)
	for start := 0; start < len(txids); start += s.opts.BatchSize {
		end := start + s.opts.BatchSize
		if end > len(txids) {
			end = len(txids)
		}
		chunks = append(chunks, txids[start:end])
	}

	results, err := workerpool.Map(ctx, s.opts.Workers, chunks, func(ctx context.Context, chunk []string) (map[string][]Output, error) {
		s.limiter.Take()
		return s.source.Outputs(ctx, chunk)
	})
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]Output, len(txids))
	for _, r := range results {
		for txid, outs := range r {
			merged[txid] = outs
		}
	}
	return merged, nil
}
