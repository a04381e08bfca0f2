package bitcoinrpc

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/multichain-client/internal/clock"
	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/goodnatureofminers/multichain-client/pkg/block"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
)

const (
	defaultAttempts   = 3
	defaultRetryDelay = 200 * time.Millisecond
)

// Source serves previous outputs and blocks from a node.
type Source struct {
	client     *Client
	chain      chain.Chain
	network    chain.Network
	attempts   int
	retryDelay time.Duration
}

// NewSource constructs a Source for a UTXO chain.
func NewSource(client *Client, c chain.Chain, network chain.Network) (*Source, error) {
	if !c.IsUTXO() {
		return nil, chain.NewError(chain.CodeUnsupportedChain, fmt.Sprintf("%s is not a utxo chain", c))
	}
	return &Source{
		client:     client,
		chain:      c,
		network:    network,
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}, nil
}

// Outputs fetches every transaction and lists its outputs. Transactions the node does not
// know are left out.
func (s *Source) Outputs(ctx context.Context, txids []string) (map[string][]enrichment.Output, error) {
	result := make(map[string][]enrichment.Output, len(txids))
	for _, txid := range txids {
		tx, found, err := s.transaction(ctx, txid)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		result[txid] = enrichment.OutputsOf(tx)
	}
	return result, nil
}

// Transaction fetches and decodes one transaction.
func (s *Source) Transaction(ctx context.Context, txid string) (*transaction.UtxoTransaction, error) {
	tx, found, err := s.transaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, chain.NewError(chain.CodeInvalidParameter, fmt.Sprintf("transaction %s not found", txid))
	}
	return tx, nil
}

func (s *Source) transaction(ctx context.Context, txid string) (*transaction.UtxoTransaction, bool, error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, false, chain.WrapError(chain.CodeInvalidParameter, fmt.Sprintf("txid %q", txid), err)
	}

	var (
		tx       *transaction.UtxoTransaction
		notFound bool
	)
	err = clock.Retry(ctx, s.attempts, s.retryDelay, func(context.Context) error {
		res, err := s.client.GetRawTransactionVerbose(hash)
		if IsNotFound(err) {
			notFound = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("get raw transaction %s: %w", txid, err)
		}
		tx, err = transaction.NewUtxoFromRPC(s.chain, s.network, *res)
		if err != nil {
			return fmt.Errorf("decode transaction %s: %w: %w", txid, clock.ErrPermanent, err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return tx, !notFound, nil
}

// Block fetches the block at height with its transactions.
func (s *Source) Block(ctx context.Context, height int64) (*block.UtxoBlock, error) {
	var b *block.UtxoBlock
	err := clock.Retry(ctx, s.attempts, s.retryDelay, func(context.Context) error {
		hash, err := s.client.GetBlockHash(height)
		if err != nil {
			return fmt.Errorf("get block hash %d: %w", height, err)
		}
		res, err := s.client.GetBlockVerboseTx(hash)
		if err != nil {
			return fmt.Errorf("get block %s: %w", hash, err)
		}
		b, err = block.NewUtxoBlockWithTransactions(s.chain, s.network, *res)
		if err != nil {
			return fmt.Errorf("decode block %d: %w: %w", height, clock.ErrPermanent, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
