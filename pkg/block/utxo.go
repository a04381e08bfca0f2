package block

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/safe"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
)

// UtxoHeader holds the header fields reported by getblock.
type UtxoHeader struct {
	Version    uint32
	MerkleRoot string
	Bits       uint32
	Nonce      uint32
	Difficulty float64
	Size       uint32
}

// UtxoBlock is a Bitcoin or Dogecoin block. Transactions are only available when the block
// was fetched with verbosity 2.
type UtxoBlock struct {
	chain        chain.Chain
	height       uint64
	hash         string
	previousHash string
	timestamp    int64
	header       UtxoHeader
	txIDs        []string
	transactions []*transaction.UtxoTransaction
}

// ParseBits parses a compact difficulty target.
func ParseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

func newUtxoBlock(c chain.Chain, height int64, hash, previous string, timestamp int64, version, size int32, merkleRoot, bits string, nonce uint32, difficulty float64) (*UtxoBlock, error) {
	if !c.IsUTXO() {
		return nil, chain.NewError(chain.CodeUnsupportedChain, fmt.Sprintf("%s is not a utxo chain", c))
	}
	parsedBits, err := ParseBits(bits)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("block %d bits parse", height), err)
	}
	h, err := safe.Uint64(height)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("block height %d", height), err)
	}
	v, err := safe.Uint32(version)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("block %d version", height), err)
	}
	s, err := safe.Uint32(size)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("block %d size", height), err)
	}
	if !encoding.IsValidBytes32Hex(hash) {
		return nil, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("block %d hash %q", height, hash))
	}

	return &UtxoBlock{
		chain:        c,
		height:       h,
		hash:         hash,
		previousHash: previous,
		timestamp:    timestamp,
		header: UtxoHeader{
			Version:    v,
			MerkleRoot: merkleRoot,
			Bits:       parsedBits,
			Nonce:      nonce,
			Difficulty: difficulty,
			Size:       s,
		},
	}, nil
}

// NewUtxoBlock maps a verbosity 1 getblock result, which lists transaction ids only.
func NewUtxoBlock(c chain.Chain, src btcjson.GetBlockVerboseResult) (*UtxoBlock, error) {
	b, err := newUtxoBlock(c, src.Height, src.Hash, src.PreviousHash, src.Time, src.Version, src.Size, src.MerkleRoot, src.Bits, src.Nonce, src.Difficulty)
	if err != nil {
		return nil, err
	}
	b.txIDs = append([]string(nil), src.Tx...)
	return b, nil
}

// NewUtxoBlockWithTransactions maps a verbosity 2 getblock result and builds its
// transactions. Block time and hash are copied onto transactions that omit them.
func NewUtxoBlockWithTransactions(c chain.Chain, network chain.Network, src btcjson.GetBlockVerboseTxResult) (*UtxoBlock, error) {
	b, err := newUtxoBlock(c, src.Height, src.Hash, src.PreviousHash, src.Time, src.Version, src.Size, src.MerkleRoot, src.Bits, src.Nonce, src.Difficulty)
	if err != nil {
		return nil, err
	}
	b.txIDs = make([]string, 0, len(src.Tx))
	b.transactions = make([]*transaction.UtxoTransaction, 0, len(src.Tx))
	for _, rawTx := range src.Tx {
		raw := transaction.FromTxRawResult(rawTx)
		if raw.Blocktime == 0 {
			raw.Blocktime = src.Time
		}
		if raw.BlockHash == "" {
			raw.BlockHash = src.Hash
		}
		tx, err := transaction.NewUtxo(c, network, raw)
		if err != nil {
			return nil, fmt.Errorf("block %d tx %s: %w", src.Height, rawTx.Txid, err)
		}
		b.txIDs = append(b.txIDs, rawTx.Txid)
		b.transactions = append(b.transactions, tx)
	}
	return b, nil
}

func (b *UtxoBlock) Chain() chain.Chain   { return b.chain }
func (b *UtxoBlock) Number() uint64       { return b.height }
func (b *UtxoBlock) Hash() string         { return b.hash }
func (b *UtxoBlock) PreviousHash() string { return b.previousHash }
func (b *UtxoBlock) UnixTimestamp() int64 { return b.timestamp }
func (b *UtxoBlock) Header() UtxoHeader   { return b.header }

func (b *UtxoBlock) StandardizedHash() common.Hash {
	return encoding.StandardTransactionID(b.hash)
}

func (b *UtxoBlock) TransactionIDs() []string {
	return append([]string(nil), b.txIDs...)
}

func (b *UtxoBlock) StandardizedTransactionIDs() []common.Hash {
	return standardizedIDs(b.txIDs, standardHex)
}

func (b *UtxoBlock) TransactionCount() int { return len(b.txIDs) }

// Transactions is empty for blocks built from a verbosity 1 result.
func (b *UtxoBlock) Transactions() []*transaction.UtxoTransaction {
	return append([]*transaction.UtxoTransaction(nil), b.transactions...)
}
