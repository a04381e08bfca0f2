package block

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
)

// XrpRawLedger is the ledger object of the rippled ledger command. Transactions are hashes,
// or full objects carrying metaData when requested with expand=true.
type XrpRawLedger struct {
	LedgerHash   string            `json:"ledger_hash"`
	LedgerIndex  json.Number       `json:"ledger_index"`
	ParentHash   string            `json:"parent_hash"`
	CloseTime    int64             `json:"close_time"`
	Closed       bool              `json:"closed,omitempty"`
	Transactions []json.RawMessage `json:"transactions,omitempty"`
}

// XrpLedgerResult is the envelope returned by the ledger command.
type XrpLedgerResult struct {
	Ledger    XrpRawLedger `json:"ledger"`
	Validated bool         `json:"validated,omitempty"`
}

// XrpBlock is a validated XRP ledger.
type XrpBlock struct {
	raw          XrpRawLedger
	index        uint64
	txIDs        []string
	transactions []*transaction.XrpTransaction
}

// NewXrpBlock maps a ledger object. Expanded transactions inherit the ledger close time and
// index when they omit them.
func NewXrpBlock(raw XrpRawLedger) (*XrpBlock, error) {
	index, err := strconv.ParseUint(raw.LedgerIndex.String(), 10, 64)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("ledger index %q", raw.LedgerIndex), err)
	}
	if !encoding.IsValidBytes32Hex(raw.LedgerHash) {
		return nil, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("ledger %d hash %q", index, raw.LedgerHash))
	}

	b := &XrpBlock{raw: raw, index: index, txIDs: make([]string, 0, len(raw.Transactions))}
	for i, item := range raw.Transactions {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var id string
			if err := json.Unmarshal(item, &id); err != nil {
				return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("ledger %d tx %d", index, i), err)
			}
			b.txIDs = append(b.txIDs, id)
			continue
		}
		var rawTx transaction.XrpRawTransaction
		if err := json.Unmarshal(item, &rawTx); err != nil {
			return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("ledger %d tx %d", index, i), err)
		}
		if rawTx.Date == 0 {
			rawTx.Date = raw.CloseTime
		}
		if rawTx.LedgerIndex == 0 {
			rawTx.LedgerIndex = index
		}
		tx, err := transaction.NewXrp(rawTx)
		if err != nil {
			return nil, fmt.Errorf("ledger %d tx %d: %w", index, i, err)
		}
		b.txIDs = append(b.txIDs, tx.ID())
		b.transactions = append(b.transactions, tx)
	}
	return b, nil
}

// DecodeXrpBlock accepts either the ledger command result or a bare ledger object.
func DecodeXrpBlock(data []byte) (*XrpBlock, error) {
	var envelope XrpLedgerResult
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, "decode xrp ledger", err)
	}
	if envelope.Ledger.LedgerHash != "" {
		return NewXrpBlock(envelope.Ledger)
	}
	var raw XrpRawLedger
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, "decode xrp ledger", err)
	}
	return NewXrpBlock(raw)
}

func (b *XrpBlock) Chain() chain.Chain   { return chain.XRP }
func (b *XrpBlock) Number() uint64       { return b.index }
func (b *XrpBlock) Hash() string         { return b.raw.LedgerHash }
func (b *XrpBlock) PreviousHash() string { return b.raw.ParentHash }

// UnixTimestamp converts the ripple-epoch close time.
func (b *XrpBlock) UnixTimestamp() int64 {
	return b.raw.CloseTime + transaction.RippleEpochOffset
}

func (b *XrpBlock) StandardizedHash() common.Hash {
	return encoding.StandardTransactionID(b.raw.LedgerHash)
}

func (b *XrpBlock) TransactionIDs() []string {
	return append([]string(nil), b.txIDs...)
}

func (b *XrpBlock) StandardizedTransactionIDs() []common.Hash {
	return standardizedIDs(b.txIDs, standardHex)
}

func (b *XrpBlock) TransactionCount() int { return len(b.txIDs) }

// Transactions is empty unless the ledger was fetched expanded.
func (b *XrpBlock) Transactions() []*transaction.XrpTransaction {
	return append([]*transaction.XrpTransaction(nil), b.transactions...)
}
