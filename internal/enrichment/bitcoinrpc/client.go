// Package bitcoinrpc reads transactions and blocks from bitcoind-compatible nodes
// (Bitcoin Core, Dogecoin Core) and serves them as an enrichment source.
package bitcoinrpc

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

// Config holds node connection settings.
type Config struct {
	Host string
	User string
	Pass string
	TLS  bool
}

// Dial opens an HTTP POST mode client; bitcoind does not serve websockets.
func Dial(cfg Config) (*rpcclient.Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("rpc host is required")
	}
	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		HTTPPostMode: true,
		DisableTLS:   !cfg.TLS,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create rpc client: %w", err)
	}
	return client, nil
}

// Client wraps a node client with metrics instrumentation.
type Client struct {
	client     NodeClient
	rpcMetrics RPCMetrics
}

// NewClient constructs an instrumented client.
func NewClient(client NodeClient, rpcMetrics RPCMetrics) *Client {
	return &Client{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetRawTransactionVerbose returns a decoded transaction.
func (r *Client) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction_verbose", err, started)
	}()
	return r.client.GetRawTransactionVerbose(txHash)
}

// GetBlockHash returns the block hash for a height.
func (r *Client) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

// GetBlockVerboseTx returns a verbose block with transactions.
func (r *Client) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose_tx", err, started)
	}()
	return r.client.GetBlockVerboseTx(blockHash)
}

// IsNotFound reports whether err is the node's "no such transaction" error.
func IsNotFound(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo
}
