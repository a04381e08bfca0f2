package block

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
)

// AlgoRawBlock is an Algorand indexer block. The indexer does not return the hash of the
// block itself; BlockHash is filled by callers that know it, base64 encoded like the
// previous-block-hash field.
type AlgoRawBlock struct {
	Round             uint64                           `json:"round"`
	Timestamp         int64                            `json:"timestamp"`
	GenesisID         string                           `json:"genesis-id,omitempty"`
	GenesisHash       string                           `json:"genesis-hash,omitempty"`
	PreviousBlockHash string                           `json:"previous-block-hash"`
	BlockHash         string                           `json:"block-hash,omitempty"`
	Seed              string                           `json:"seed,omitempty"`
	TransactionsRoot  string                           `json:"transactions-root,omitempty"`
	Transactions      []transaction.AlgoRawTransaction `json:"transactions,omitempty"`
}

// AlgoBlock is a confirmed Algorand round.
type AlgoBlock struct {
	raw          AlgoRawBlock
	transactions []*transaction.AlgoTransaction
}

// NewAlgoBlock maps an indexer block. Transactions inherit the round and its time when they
// omit them.
func NewAlgoBlock(raw AlgoRawBlock) (*AlgoBlock, error) {
	b := &AlgoBlock{raw: raw, transactions: make([]*transaction.AlgoTransaction, 0, len(raw.Transactions))}
	for i, rawTx := range raw.Transactions {
		if rawTx.RoundTime == 0 {
			rawTx.RoundTime = raw.Timestamp
		}
		if rawTx.ConfirmedRound == 0 {
			rawTx.ConfirmedRound = raw.Round
		}
		tx, err := transaction.NewAlgo(rawTx)
		if err != nil {
			return nil, fmt.Errorf("round %d tx %d: %w", raw.Round, i, err)
		}
		b.transactions = append(b.transactions, tx)
	}
	return b, nil
}

// DecodeAlgoBlock builds a block from indexer JSON.
func DecodeAlgoBlock(data []byte) (*AlgoBlock, error) {
	var raw AlgoRawBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, "decode algorand block", err)
	}
	return NewAlgoBlock(raw)
}

func (b *AlgoBlock) Chain() chain.Chain   { return chain.ALGO }
func (b *AlgoBlock) Number() uint64       { return b.raw.Round }
func (b *AlgoBlock) Hash() string         { return b.raw.BlockHash }
func (b *AlgoBlock) PreviousHash() string { return b.raw.PreviousBlockHash }
func (b *AlgoBlock) UnixTimestamp() int64 { return b.raw.Timestamp }

func base64Hash(s string) common.Hash {
	h, err := encoding.Base64ToHex(s)
	if err != nil {
		return encoding.ZeroBytes32()
	}
	return encoding.StandardTransactionID(h)
}

// StandardizedHash is the zero hash when the block hash is unknown or malformed.
func (b *AlgoBlock) StandardizedHash() common.Hash {
	return base64Hash(b.raw.BlockHash)
}

func (b *AlgoBlock) TransactionIDs() []string {
	ids := make([]string, 0, len(b.transactions))
	for _, tx := range b.transactions {
		ids = append(ids, tx.ID())
	}
	return ids
}

func (b *AlgoBlock) StandardizedTransactionIDs() []common.Hash {
	ids := make([]common.Hash, 0, len(b.transactions))
	for _, tx := range b.transactions {
		ids = append(ids, tx.StandardizedID())
	}
	return ids
}

func (b *AlgoBlock) TransactionCount() int { return len(b.transactions) }

func (b *AlgoBlock) Transactions() []*transaction.AlgoTransaction {
	return append([]*transaction.AlgoTransaction(nil), b.transactions...)
}

// PreviousStandardizedHash decodes the base64 previous-block-hash.
func (b *AlgoBlock) PreviousStandardizedHash() common.Hash {
	return base64Hash(b.raw.PreviousBlockHash)
}
