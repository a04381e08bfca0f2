// Package summarizer decodes raw transactions of any supported chain and computes their
// payment and balance-decreasing summaries in batches.
package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
	"github.com/goodnatureofminers/multichain-client/pkg/workerpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName     = "github.com/goodnatureofminers/multichain-client/internal/summarizer"
	defaultWorkers = 8

	kindPayment           = "payment"
	kindBalanceDecreasing = "balance_decreasing"
)

// Options configures a Service. Enrichers and Recorders are keyed by UTXO chain; chains
// without an enricher are summarized with whatever prevouts the payload embeds.
type Options struct {
	Workers   int
	Enrichers map[chain.Chain]Enricher
	Recorders map[chain.Chain]Recorder
}

type Service struct {
	metrics Metrics
	logger  *zap.Logger
	tracer  trace.Tracer
	opts    Options
}

func NewService(metrics Metrics, logger *zap.Logger, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Service{
		metrics: metrics,
		logger:  logger.Named("summarizer"),
		tracer:  otel.Tracer(tracerName),
		opts:    opts,
	}
}

// Decode builds the transaction model for a raw payload. An empty network means mainnet.
func (s *Service) Decode(c chain.Chain, network chain.Network, data []byte) (tx transaction.Transaction, err error) {
	defer func() {
		s.metrics.ObserveDecode(string(c), err)
	}()

	if network == "" {
		network = chain.Mainnet
	}
	switch c {
	case chain.BTC, chain.DOGE:
		utxo, err := transaction.DecodeUtxo(c, network, data)
		if err != nil {
			return nil, err
		}
		return utxo, nil
	case chain.XRP:
		xrp, err := transaction.DecodeXrp(data)
		if err != nil {
			return nil, err
		}
		return xrp, nil
	case chain.ALGO:
		algo, err := transaction.DecodeAlgo(data)
		if err != nil {
			return nil, err
		}
		return algo, nil
	default:
		return nil, chain.NewError(chain.CodeUnsupportedChain, fmt.Sprintf("unsupported chain %q", c))
	}
}

// Summarize handles a single request.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	results, err := s.SummarizeBatch(ctx, []Request{req})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// SummarizeBatch summarizes every request. Decode failures are reported per request;
// an enrichment failure fails the whole batch.
func (s *Service) SummarizeBatch(ctx context.Context, reqs []Request) (results []Result, err error) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "summarizer.SummarizeBatch", trace.WithAttributes(attribute.Int("requests", len(reqs))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	txs := make([]transaction.Transaction, len(reqs))
	decodeErrs := make([]error, len(reqs))
	utxos := make(map[chain.Chain][]*transaction.UtxoTransaction)
	for i, req := range reqs {
		tx, decodeErr := s.Decode(req.Chain, req.Network, req.Transaction)
		if decodeErr != nil {
			decodeErrs[i] = decodeErr
			continue
		}
		txs[i] = tx
		if utxo, ok := tx.(*transaction.UtxoTransaction); ok {
			utxos[req.Chain] = append(utxos[req.Chain], utxo)
		}
	}

	if err = s.enrich(ctx, utxos); err != nil {
		for _, req := range reqs {
			s.metrics.ObserveRequest(string(req.Chain), err, started)
		}
		return nil, err
	}

	results = make([]Result, len(reqs))
	err = workerpool.Each(ctx, s.opts.Workers, len(reqs), func(_ context.Context, i int) error {
		req := reqs[i]
		if decodeErrs[i] != nil {
			s.metrics.ObserveRequest(string(req.Chain), decodeErrs[i], started)
			results[i] = failed(req.Chain, decodeErrs[i])
			return nil
		}
		results[i] = s.summarize(req, txs[i])
		s.metrics.ObserveRequest(string(req.Chain), nil, started)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) enrich(ctx context.Context, utxos map[chain.Chain][]*transaction.UtxoTransaction) error {
	for c, txs := range utxos {
		if enricher, ok := s.opts.Enrichers[c]; ok {
			if err := enricher.Enrich(ctx, txs...); err != nil {
				return fmt.Errorf("enrich %s transactions: %w", c, err)
			}
		}
		recorder, ok := s.opts.Recorders[c]
		if !ok {
			continue
		}
		for _, tx := range txs {
			if err := recorder.Record(ctx, tx); err != nil {
				s.logger.Warn("record outputs",
					zap.String("chain", string(c)),
					zap.String("txid", tx.ID()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

func (s *Service) summarize(req Request, tx transaction.Transaction) Result {
	c := string(req.Chain)
	result := Result{
		Chain:         req.Chain,
		TransactionID: tx.StandardizedID().Hex(),
		Type:          tx.Type(),
	}
	if fee, err := tx.Fee(); err == nil {
		result.Fee = &fee
	}

	payment := tx.PaymentSummary(req.InUtxo, req.OutUtxo)
	result.Payment = &payment
	s.metrics.ObserveSummary(c, kindPayment, string(payment.Status))

	if req.SourceAddressIndicator != "" {
		balance := tx.BalanceDecreasingSummary(req.SourceAddressIndicator)
		result.BalanceDecreasing = &balance
		s.metrics.ObserveSummary(c, kindBalanceDecreasing, string(balance.Status))
	}
	return result
}
