// Package bootstrap assembles the per-chain enrichment stack shared by the commands.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/goodnatureofminers/multichain-client/internal/enrichment/bitcoinrpc"
	"github.com/goodnatureofminers/multichain-client/internal/enrichment/clickhouse"
	"github.com/goodnatureofminers/multichain-client/internal/enrichment/rediscache"
	"github.com/goodnatureofminers/multichain-client/internal/metrics"
	"github.com/goodnatureofminers/multichain-client/internal/summarizer"
	"github.com/goodnatureofminers/multichain-client/pkg/batcher"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NodeConfig points at one bitcoind-compatible node.
type NodeConfig struct {
	Host string `long:"rpc-host" env:"RPC_HOST" description:"node RPC host:port, node lookups are off when empty"`
	User string `long:"rpc-user" env:"RPC_USER" description:"node RPC username"`
	Pass string `long:"rpc-pass" env:"RPC_PASS" description:"node RPC password"`
	TLS  bool   `long:"rpc-tls" env:"RPC_TLS" description:"use TLS for node RPC"`
}

// EnrichmentConfig configures the shared previous-output store, cache and worker limits.
type EnrichmentConfig struct {
	ClickhouseDSN       string        `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"ClickHouse DSN of the previous-output lookup table"`
	RedisAddr           string        `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address of the previous-output cache"`
	CacheTTL            time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"1h" description:"lifetime of cached previous outputs"`
	Workers             int           `long:"workers" env:"WORKERS" default:"4" description:"concurrent previous-output lookups" validate:"gte=1"`
	BatchSize           int           `long:"batch-size" env:"BATCH_SIZE" default:"1000" description:"txids per previous-output lookup" validate:"gte=1"`
	RPS                 int           `long:"rps" env:"RPS" default:"0" description:"previous-output lookups per second, unlimited when 0" validate:"gte=0"`
	Record              bool          `long:"record" env:"RECORD" description:"store outputs of summarized transactions in ClickHouse"`
	RecordFlushSize     int           `long:"record-flush-size" env:"RECORD_FLUSH_SIZE" default:"1000" validate:"gte=1"`
	RecordFlushInterval time.Duration `long:"record-flush-interval" env:"RECORD_FLUSH_INTERVAL" default:"1s"`
}

// Stack holds the enrichers and recorders of every UTXO chain that has at least one
// previous-output source configured.
type Stack struct {
	Enrichers map[chain.Chain]summarizer.Enricher
	Recorders map[chain.Chain]summarizer.Recorder
	Nodes     map[chain.Chain]*bitcoinrpc.Source

	logger    *zap.Logger
	repo      *clickhouse.Repository
	redis     *redis.Client
	rpc       []*rpcclient.Client
	recorders []*enrichment.Recorder
}

// New dials the configured backends and builds the stack. Chains without a node and
// without ClickHouse are left unenriched.
func New(ctx context.Context, cfg EnrichmentConfig, nodes map[chain.Chain]NodeConfig, network chain.Network, logger *zap.Logger) (*Stack, error) {
	s := &Stack{
		Enrichers: map[chain.Chain]summarizer.Enricher{},
		Recorders: map[chain.Chain]summarizer.Recorder{},
		Nodes:     map[chain.Chain]*bitcoinrpc.Source{},
		logger:    logger.Named("bootstrap"),
	}

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		s.repo = repo
	}
	if cfg.RedisAddr != "" {
		client, err := rediscache.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("init redis: %w", err)
		}
		s.redis = client
	}

	for _, c := range chain.Chains() {
		if !c.IsUTXO() {
			continue
		}
		if err := s.addChain(cfg, c, network, nodes[c], logger); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Stack) addChain(cfg EnrichmentConfig, c chain.Chain, network chain.Network, node NodeConfig, logger *zap.Logger) error {
	logger = logger.With(zap.String("chain", string(c)), zap.String("network", string(network)))
	enrichMetrics := metrics.NewEnrichment(c, network)

	var sources enrichment.FallbackSource
	if s.repo != nil {
		sources = append(sources, clickhouse.NewStore(s.repo, c, network))
	}
	if node.Host != "" {
		client, err := bitcoinrpc.Dial(bitcoinrpc.Config{Host: node.Host, User: node.User, Pass: node.Pass, TLS: node.TLS})
		if err != nil {
			return fmt.Errorf("init %s rpc client: %w", c, err)
		}
		s.rpc = append(s.rpc, client)
		src, err := bitcoinrpc.NewSource(bitcoinrpc.NewClient(client, metrics.NewRPCClient(c, network)), c, network)
		if err != nil {
			return err
		}
		s.Nodes[c] = src
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil
	}

	var source enrichment.Source = sources
	if len(sources) == 1 {
		source = sources[0]
	}
	if s.redis != nil {
		source = rediscache.NewCachedSource(source, s.redis, enrichMetrics, logger, c, network, cfg.CacheTTL)
	}
	s.Enrichers[c] = enrichment.NewService(source, enrichMetrics, logger, enrichment.Options{
		Workers:   cfg.Workers,
		BatchSize: cfg.BatchSize,
		RPS:       cfg.RPS,
	})

	if cfg.Record && s.repo != nil {
		recorder := enrichment.NewRecorder(clickhouse.NewStore(s.repo, c, network), enrichMetrics, logger, batcher.Options{
			FlushSize:     cfg.RecordFlushSize,
			FlushInterval: cfg.RecordFlushInterval,
		})
		s.recorders = append(s.recorders, recorder)
		s.Recorders[c] = recorder
	}

	s.logger.Info("enrichment configured",
		zap.String("chain", string(c)),
		zap.Int("sources", len(sources)),
		zap.Bool("cache", s.redis != nil),
		zap.Bool("record", s.Recorders[c] != nil),
	)
	return nil
}

// Start begins background flushing of the recorders.
func (s *Stack) Start(ctx context.Context) {
	for _, r := range s.recorders {
		r.Start(ctx)
	}
}

// Close flushes the recorders and releases every backend.
func (s *Stack) Close() error {
	for _, r := range s.recorders {
		r.Stop()
	}
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.repo != nil {
		errs = append(errs, s.repo.Close())
	}
	for _, client := range s.rpc {
		client.Shutdown()
		client.WaitForShutdown()
	}
	return errors.Join(errs...)
}
