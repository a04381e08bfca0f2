package transaction

import (
	"encoding/json"
)

// XrpRawTransaction is the result of the rippled tx command. Transactions embedded in a
// ledger carry their metadata under metaData instead of meta.
type XrpRawTransaction struct {
	Hash            string           `json:"hash"`
	Account         string           `json:"Account"`
	Destination     string           `json:"Destination,omitempty"`
	DestinationTag  *uint32          `json:"DestinationTag,omitempty"`
	Amount          json.RawMessage  `json:"Amount,omitempty"`
	Fee             string           `json:"Fee"`
	Flags           uint32           `json:"Flags,omitempty"`
	Sequence        uint32           `json:"Sequence"`
	SigningPubKey   string           `json:"SigningPubKey,omitempty"`
	TransactionType string           `json:"TransactionType"`
	Memos           []XrpMemoWrapper `json:"Memos,omitempty"`
	Date            int64            `json:"date,omitempty"`
	LedgerIndex     uint64           `json:"ledger_index,omitempty"`
	Validated       bool             `json:"validated,omitempty"`
	Meta            *XrpMeta         `json:"meta,omitempty"`
	MetaData        *XrpMeta         `json:"metaData,omitempty"`
}

// XrpMemoWrapper mirrors the {"Memo": {...}} nesting of the Memos array.
type XrpMemoWrapper struct {
	Memo XrpMemo `json:"Memo"`
}

// XrpMemo fields are hex encoded.
type XrpMemo struct {
	MemoData   string `json:"MemoData,omitempty"`
	MemoType   string `json:"MemoType,omitempty"`
	MemoFormat string `json:"MemoFormat,omitempty"`
}

// XrpMeta is the execution metadata of a validated transaction.
type XrpMeta struct {
	AffectedNodes     []XrpAffectedNode `json:"AffectedNodes"`
	TransactionIndex  uint32            `json:"TransactionIndex"`
	TransactionResult string            `json:"TransactionResult"`
	DeliveredAmount   json.RawMessage   `json:"delivered_amount,omitempty"`
}

// XrpAffectedNode holds exactly one of its fields.
type XrpAffectedNode struct {
	CreatedNode  *XrpNode `json:"CreatedNode,omitempty"`
	ModifiedNode *XrpNode `json:"ModifiedNode,omitempty"`
	DeletedNode  *XrpNode `json:"DeletedNode,omitempty"`
}

// XrpNode is a ledger entry touched by the transaction.
type XrpNode struct {
	LedgerEntryType string            `json:"LedgerEntryType"`
	LedgerIndex     string            `json:"LedgerIndex,omitempty"`
	FinalFields     *XrpAccountFields `json:"FinalFields,omitempty"`
	PreviousFields  *XrpAccountFields `json:"PreviousFields,omitempty"`
	NewFields       *XrpAccountFields `json:"NewFields,omitempty"`
}

// XrpAccountFields keeps the AccountRoot fields needed for balance diffs. Balance is a drops
// string on AccountRoot entries and an object on trust lines, so it stays raw.
type XrpAccountFields struct {
	Account string          `json:"Account,omitempty"`
	Balance json.RawMessage `json:"Balance,omitempty"`
}

// XrpLedgerEntryAccountRoot is the ledger entry type holding native balances.
const XrpLedgerEntryAccountRoot = "AccountRoot"
