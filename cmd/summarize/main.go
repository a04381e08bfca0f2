package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/multichain-client/internal/bootstrap"
	"github.com/goodnatureofminers/multichain-client/internal/cli"
	"github.com/goodnatureofminers/multichain-client/internal/metrics"
	"github.com/goodnatureofminers/multichain-client/internal/summarizer"
	"github.com/goodnatureofminers/multichain-client/internal/telemetry"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"go.uber.org/zap"
)

type config struct {
	Chain                  string `long:"chain" env:"SUMMARIZE_CHAIN" description:"chain of the transaction (btc, doge, xrp, algo)" required:"true"`
	Network                string `long:"network" env:"SUMMARIZE_NETWORK" description:"network name" default:"mainnet"`
	File                   string `long:"file" short:"f" description:"raw transaction JSON file, - for stdin"`
	TxID                   string `long:"txid" description:"fetch the transaction from the node instead of a file" validate:"omitempty,hexadecimal,len=64"`
	BlockHeight            int64  `long:"block-height" description:"summarize every transaction of the block at this height" default:"-1" validate:"gte=-1"`
	InUtxo                 int    `long:"in-utxo" description:"input index of the source address" validate:"gte=0"`
	OutUtxo                int    `long:"out-utxo" description:"output index of the receiving address" validate:"gte=0"`
	SourceAddressIndicator string `long:"source-address-indicator" description:"also compute the balance-decreasing summary for this address or input index"`
	Coins                  bool   `long:"coins" description:"add amounts in whole coins"`
	LogJSON                bool   `long:"log-json" env:"SUMMARIZE_LOG_JSON" description:"production JSON logging"`
	OtelEndpoint           string `long:"otel-endpoint" env:"SUMMARIZE_OTEL_ENDPOINT" description:"OTLP/HTTP trace endpoint, tracing is off when empty"`

	Enrichment bootstrap.EnrichmentConfig `group:"enrichment" namespace:"enrich" env-namespace:"SUMMARIZE"`
	BTC        bootstrap.NodeConfig       `group:"btc" namespace:"btc" env-namespace:"SUMMARIZE_BTC"`
	DOGE       bootstrap.NodeConfig       `group:"doge" namespace:"doge" env-namespace:"SUMMARIZE_DOGE"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rest, err := cli.Load(&cfg, os.Args[1:], ".env")
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
	if cfg.File == "" && len(rest) > 0 {
		cfg.File = rest[0]
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("summarize failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	c, err := chain.Parse(cfg.Chain)
	if err != nil {
		return err
	}
	network, err := chain.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.InitTracer(ctx, "multichain-summarize", cfg.OtelEndpoint)
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

	txs, err := loadTransactions(ctx, cfg, c, stack)
	if err != nil {
		return err
	}

	reqs := make([]summarizer.Request, len(txs))
	for i, tx := range txs {
		reqs[i] = summarizer.Request{
			Chain:                  c,
			Network:                network,
			Transaction:            tx,
			InUtxo:                 cfg.InUtxo,
			OutUtxo:                cfg.OutUtxo,
			SourceAddressIndicator: cfg.SourceAddressIndicator,
		}
	}

	svc := summarizer.NewService(metrics.NewSummarizer(), logger, summarizer.Options{
		Enrichers: stack.Enrichers,
		Recorders: stack.Recorders,
	})
	results, err := svc.SummarizeBatch(ctx, reqs)
	if err != nil {
		return err
	}

	out := make([]output, len(results))
	for i, r := range results {
		out[i] = newOutput(r, cfg.Coins)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if cfg.BlockHeight < 0 {
		return enc.Encode(out[0])
	}
	return enc.Encode(out)
}

func loadTransactions(ctx context.Context, cfg config, c chain.Chain, stack *bootstrap.Stack) ([]json.RawMessage, error) {
	if cfg.TxID == "" && cfg.BlockHeight < 0 {
		data, err := readInput(cfg.File)
		if err != nil {
			return nil, err
		}
		return []json.RawMessage{data}, nil
	}

	node, ok := stack.Nodes[c]
	if !ok {
		return nil, fmt.Errorf("no %s node configured", c)
	}

	if cfg.BlockHeight >= 0 {
		blk, err := node.Block(ctx, cfg.BlockHeight)
		if err != nil {
			return nil, fmt.Errorf("fetch block %d: %w", cfg.BlockHeight, err)
		}
		out := make([]json.RawMessage, 0, blk.TransactionCount())
		for _, tx := range blk.Transactions() {
			data, err := json.Marshal(tx.Raw())
			if err != nil {
				return nil, fmt.Errorf("encode transaction %s: %w", tx.ID(), err)
			}
			out = append(out, data)
		}
		return out, nil
	}

	tx, err := node.Transaction(ctx, cfg.TxID)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", cfg.TxID, err)
	}
	data, err := json.Marshal(tx.Raw())
	if err != nil {
		return nil, fmt.Errorf("encode transaction %s: %w", tx.ID(), err)
	}
	return []json.RawMessage{data}, nil
}

func readInput(path string) ([]byte, error) {
	switch path {
	case "":
		return nil, errors.New("a transaction file, --txid or --block-height is required")
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}
}
