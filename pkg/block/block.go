// Package block provides uniform header and body accessors over UTXO node blocks, XRP
// ledgers and Algorand indexer blocks.
package block

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
)

// Block is the capability set shared by every chain family.
type Block interface {
	Chain() chain.Chain
	Number() uint64
	Hash() string
	StandardizedHash() common.Hash
	PreviousHash() string
	UnixTimestamp() int64
	TransactionIDs() []string
	StandardizedTransactionIDs() []common.Hash
	TransactionCount() int
}

func standardizedIDs(ids []string, standardize func(string) common.Hash) []common.Hash {
	out := make([]common.Hash, 0, len(ids))
	for _, id := range ids {
		out = append(out, standardize(id))
	}
	return out
}

func standardHex(id string) common.Hash {
	return encoding.StandardTransactionID(id)
}
