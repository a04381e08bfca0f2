package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/multichain-client/internal/bootstrap"
	"github.com/goodnatureofminers/multichain-client/internal/cli"
	"github.com/goodnatureofminers/multichain-client/internal/httpapi"
	"github.com/goodnatureofminers/multichain-client/internal/metrics"
	"github.com/goodnatureofminers/multichain-client/internal/summarizer"
	"github.com/goodnatureofminers/multichain-client/internal/telemetry"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"go.uber.org/zap"
)

type config struct {
	ListenAddr   string `long:"listen-addr" env:"SUMMARY_API_LISTEN_ADDR" description:"HTTP listen address" default:":8080"`
	Network      string `long:"network" env:"SUMMARY_API_NETWORK" description:"network of UTXO enrichment sources" default:"mainnet"`
	Workers      int    `long:"workers" env:"SUMMARY_API_WORKERS" description:"concurrent summaries per batch" default:"8" validate:"gte=1"`
	MaxBatch     int    `long:"max-batch" env:"SUMMARY_API_MAX_BATCH" description:"maximum requests per batch call" default:"100" validate:"gte=1,lte=10000"`
	LogJSON      bool   `long:"log-json" env:"SUMMARY_API_LOG_JSON" description:"production JSON logging"`
	OtelEndpoint string `long:"otel-endpoint" env:"SUMMARY_API_OTEL_ENDPOINT" description:"OTLP/HTTP trace endpoint, tracing is off when empty"`

	Enrichment bootstrap.EnrichmentConfig `group:"enrichment" namespace:"enrich" env-namespace:"SUMMARY_API"`
	BTC        bootstrap.NodeConfig       `group:"btc" namespace:"btc" env-namespace:"SUMMARY_API_BTC"`
	DOGE       bootstrap.NodeConfig       `group:"doge" namespace:"doge" env-namespace:"SUMMARY_API_DOGE"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := cli.Load(&cfg, os.Args[1:], ".env")
	if errors.Is(err, cli.ErrHelp) {
		return
	}

	logger, lerr := newLogger(cfg.LogJSON)
	if lerr != nil {
		panic("can't initialize zap logger: " + lerr.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("summary api failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := chain.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.InitTracer(ctx, "multichain-summary-api", cfg.OtelEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", zap.Error(err))
		}
	}()

	stack, err := bootstrap.New(ctx, cfg.Enrichment, map[chain.Chain]bootstrap.NodeConfig{
		chain.BTC:  cfg.BTC,
		chain.DOGE: cfg.DOGE,
	}, network, logger)
	if err != nil {
		return err
	}
	stack.Start(ctx)
	defer func() {
		if err := stack.Close(); err != nil {
			logger.Error("close enrichment", zap.Error(err))
		}
	}()

	svc := summarizer.NewService(metrics.NewSummarizer(), logger, summarizer.Options{
		Workers:   cfg.Workers,
		Enrichers: stack.Enrichers,
		Recorders: stack.Recorders,
	})
	srv := httpapi.NewServer(svc, metrics.NewHTTPAPI(), logger, httpapi.Options{MaxBatch: cfg.MaxBatch})
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}
