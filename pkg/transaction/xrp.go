package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
	"github.com/shopspring/decimal"
)

// RippleEpochOffset is the number of seconds between the Unix epoch and 2000-01-01T00:00:00Z.
const RippleEpochOffset = 946684800

// XrpPaymentType is the TransactionType of native and issued-currency payments.
const XrpPaymentType = "Payment"

// XrpTransaction is a validated XRP Ledger transaction. Amounts come from AccountRoot
// balance diffs in the metadata, not from the declared instruction.
type XrpTransaction struct {
	raw      XrpRawTransaction
	meta     XrpMeta
	fee      int64
	spent    []summary.AddressAmount
	received []summary.AddressAmount
}

// NewXrp validates the raw payload and derives balance changes.
func NewXrp(raw XrpRawTransaction) (*XrpTransaction, error) {
	meta := raw.Meta
	if meta == nil {
		meta = raw.MetaData
	}
	if meta == nil {
		return nil, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("xrp tx %s has no metadata", raw.Hash))
	}
	if !encoding.IsValidBytes32Hex(raw.Hash) {
		return nil, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("malformed xrp tx hash %q", raw.Hash))
	}
	fee, err := ParseDrops(raw.Fee)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("xrp tx %s fee", raw.Hash), err)
	}

	tx := &XrpTransaction{raw: raw, meta: *meta, fee: fee}
	if err := tx.diffBalances(); err != nil {
		return nil, err
	}
	return tx, nil
}

// DecodeXrp builds a transaction from tx command JSON.
func DecodeXrp(data []byte) (*XrpTransaction, error) {
	var raw XrpRawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, "decode xrp transaction", err)
	}
	return NewXrp(raw)
}

// ParseDrops parses an integer drops string.
func ParseDrops(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("fractional drops %q", value)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("drops %q out of range", value)
	}
	return d.IntPart(), nil
}

// nativeDrops reports the drops of a native amount; issued-currency amounts are JSON objects.
func nativeDrops(raw json.RawMessage) (int64, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return 0, false, nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return 0, false, err
	}
	drops, err := ParseDrops(s)
	if err != nil {
		return 0, false, err
	}
	return drops, true, nil
}

func (t *XrpTransaction) diffBalances() error {
	t.spent = make([]summary.AddressAmount, 0)
	t.received = make([]summary.AddressAmount, 0)
	for i, node := range t.meta.AffectedNodes {
		var err error
		switch {
		case node.ModifiedNode != nil:
			err = t.diffModified(node.ModifiedNode)
		case node.CreatedNode != nil:
			err = t.diffCreated(node.CreatedNode)
		case node.DeletedNode != nil:
			err = t.diffDeleted(node.DeletedNode)
		}
		if err != nil {
			return chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("xrp tx %s affected node %d", t.raw.Hash, i), err)
		}
	}
	return nil
}

func (t *XrpTransaction) diffModified(node *XrpNode) error {
	if node.LedgerEntryType != XrpLedgerEntryAccountRoot || node.FinalFields == nil || node.PreviousFields == nil {
		return nil
	}
	if len(node.PreviousFields.Balance) == 0 {
		return nil
	}
	final, _, err := nativeDrops(node.FinalFields.Balance)
	if err != nil {
		return err
	}
	previous, _, err := nativeDrops(node.PreviousFields.Balance)
	if err != nil {
		return err
	}
	account := node.FinalFields.Account
	switch diff := final - previous; {
	case diff < 0:
		t.spent = append(t.spent, summary.AddressAmount{Address: account, Amount: -diff, Utxo: summary.NoUtxo})
	case diff > 0:
		t.received = append(t.received, summary.AddressAmount{Address: account, Amount: diff, Utxo: summary.NoUtxo})
	}
	return nil
}

func (t *XrpTransaction) diffCreated(node *XrpNode) error {
	if node.LedgerEntryType != XrpLedgerEntryAccountRoot || node.NewFields == nil {
		return nil
	}
	balance, _, err := nativeDrops(node.NewFields.Balance)
	if err != nil {
		return err
	}
	if balance > 0 {
		t.received = append(t.received, summary.AddressAmount{Address: node.NewFields.Account, Amount: balance, Utxo: summary.NoUtxo})
	}
	return nil
}

func (t *XrpTransaction) diffDeleted(node *XrpNode) error {
	if node.LedgerEntryType != XrpLedgerEntryAccountRoot || node.FinalFields == nil {
		return nil
	}
	raw := node.FinalFields.Balance
	if node.PreviousFields != nil && len(node.PreviousFields.Balance) > 0 {
		raw = node.PreviousFields.Balance
	}
	balance, _, err := nativeDrops(raw)
	if err != nil {
		return err
	}
	if balance > 0 {
		t.spent = append(t.spent, summary.AddressAmount{Address: node.FinalFields.Account, Amount: balance, Utxo: summary.NoUtxo})
	}
	return nil
}

// Raw returns the payload the transaction was built from.
func (t *XrpTransaction) Raw() XrpRawTransaction { return t.raw }

// Result returns the TransactionResult code.
func (t *XrpTransaction) Result() string { return t.meta.TransactionResult }

func (t *XrpTransaction) Chain() chain.Chain { return chain.XRP }
func (t *XrpTransaction) ID() string         { return strings.ToUpper(encoding.Unprefix0x(t.raw.Hash)) }

func (t *XrpTransaction) StandardizedID() common.Hash {
	return encoding.StandardTransactionID(t.raw.Hash)
}

func (t *XrpTransaction) UnixTimestamp() int64 {
	return t.raw.Date + RippleEpochOffset
}

func (t *XrpTransaction) Type() string { return t.raw.TransactionType }

// IsNativePayment reports whether the transaction is a Payment of XRP drops.
func (t *XrpTransaction) IsNativePayment() bool {
	if t.raw.TransactionType != XrpPaymentType {
		return false
	}
	_, native, err := nativeDrops(t.raw.Amount)
	return err == nil && native
}

func (t *XrpTransaction) References() []string {
	refs := make([]string, 0, len(t.raw.Memos))
	for _, m := range t.raw.Memos {
		if m.Memo.MemoData != "" {
			refs = append(refs, m.Memo.MemoData)
		}
	}
	return refs
}

func (t *XrpTransaction) StandardizedPaymentReference() common.Hash {
	return standardizedReference(t.References())
}

func (t *XrpTransaction) SourceAddresses() []string    { return addressesOf(t.spent) }
func (t *XrpTransaction) ReceivingAddresses() []string { return addressesOf(t.received) }

func (t *XrpTransaction) SpentAmounts() []summary.AddressAmount    { return cloneAmounts(t.spent) }
func (t *XrpTransaction) ReceivedAmounts() []summary.AddressAmount { return cloneAmounts(t.received) }

func (t *XrpTransaction) Fee() (int64, error) { return t.fee, nil }

func (t *XrpTransaction) FeeSigners() []string { return []string{t.raw.Account} }

func (t *XrpTransaction) SuccessStatus() (summary.SuccessStatus, error) {
	return XrpSuccessStatus(t.meta.TransactionResult)
}
