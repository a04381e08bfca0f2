package transaction

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/safe"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

// Algorand indexer tx-type values.
const (
	AlgoTypePayment       = "pay"
	AlgoTypeAssetTransfer = "axfer"
)

// AlgoRawTransaction is an Algorand indexer transaction.
type AlgoRawTransaction struct {
	ID                       string             `json:"id"`
	Sender                   string             `json:"sender"`
	Fee                      uint64             `json:"fee"`
	TxType                   string             `json:"tx-type"`
	Note                     string             `json:"note,omitempty"`
	RoundTime                int64              `json:"round-time"`
	ConfirmedRound           uint64             `json:"confirmed-round"`
	FirstValid               uint64             `json:"first-valid,omitempty"`
	LastValid                uint64             `json:"last-valid,omitempty"`
	GenesisID                string             `json:"genesis-id,omitempty"`
	GenesisHash              string             `json:"genesis-hash,omitempty"`
	Group                    string             `json:"group,omitempty"`
	PaymentTransaction       *AlgoPayment       `json:"payment-transaction,omitempty"`
	AssetTransferTransaction *AlgoAssetTransfer `json:"asset-transfer-transaction,omitempty"`
}

// AlgoPayment is the pay-specific part of an indexer transaction.
type AlgoPayment struct {
	Receiver         string `json:"receiver"`
	Amount           uint64 `json:"amount"`
	CloseRemainderTo string `json:"close-remainder-to,omitempty"`
	CloseAmount      uint64 `json:"close-amount,omitempty"`
}

// AlgoAssetTransfer is the axfer-specific part of an indexer transaction.
type AlgoAssetTransfer struct {
	Receiver    string `json:"receiver"`
	Amount      uint64 `json:"amount"`
	AssetID     uint64 `json:"asset-id"`
	CloseTo     string `json:"close-to,omitempty"`
	CloseAmount uint64 `json:"close-amount,omitempty"`
}

// AlgoTransaction is a confirmed Algorand transaction. It always executed successfully:
// the indexer only returns committed transactions.
type AlgoTransaction struct {
	raw         AlgoRawTransaction
	fee         int64
	amount      int64
	closeAmount int64
	receiver    string
	closeTo     string
	note        []byte
}

// NewAlgo validates the raw payload.
func NewAlgo(raw AlgoRawTransaction) (*AlgoTransaction, error) {
	if raw.ID == "" || raw.Sender == "" {
		return nil, chain.NewError(chain.CodeInvalidData, "algorand transaction without id or sender")
	}
	fee, err := safe.Int64(raw.Fee)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("algo tx %s fee", raw.ID), err)
	}
	note, err := base64.StdEncoding.DecodeString(raw.Note)
	if err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("algo tx %s note", raw.ID), err)
	}

	tx := &AlgoTransaction{raw: raw, fee: fee, note: note}
	switch {
	case raw.TxType == AlgoTypePayment && raw.PaymentTransaction != nil:
		p := raw.PaymentTransaction
		if tx.amount, err = safe.Int64(p.Amount); err != nil {
			return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("algo tx %s amount", raw.ID), err)
		}
		if tx.closeAmount, err = safe.Int64(p.CloseAmount); err != nil {
			return nil, chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("algo tx %s close amount", raw.ID), err)
		}
		tx.receiver = p.Receiver
		tx.closeTo = p.CloseRemainderTo
	case raw.TxType == AlgoTypeAssetTransfer && raw.AssetTransferTransaction != nil:
		tx.receiver = raw.AssetTransferTransaction.Receiver
	}
	return tx, nil
}

// DecodeAlgo builds a transaction from indexer JSON.
func DecodeAlgo(data []byte) (*AlgoTransaction, error) {
	var raw AlgoRawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, "decode algorand transaction", err)
	}
	return NewAlgo(raw)
}

// Raw returns the payload the transaction was built from.
func (t *AlgoTransaction) Raw() AlgoRawTransaction { return t.raw }

func (t *AlgoTransaction) Chain() chain.Chain { return chain.ALGO }
func (t *AlgoTransaction) ID() string         { return t.raw.ID }

// StandardizedID decodes the base32 transaction id.
func (t *AlgoTransaction) StandardizedID() common.Hash {
	h, err := encoding.Base32ToHex(t.raw.ID)
	if err != nil {
		return encoding.ZeroBytes32()
	}
	return encoding.StandardTransactionID(h)
}

func (t *AlgoTransaction) UnixTimestamp() int64 { return t.raw.RoundTime }
func (t *AlgoTransaction) Type() string         { return t.raw.TxType }

func (t *AlgoTransaction) IsNativePayment() bool {
	return t.raw.TxType == AlgoTypePayment
}

// References returns the note as hex.
func (t *AlgoTransaction) References() []string {
	if len(t.note) == 0 {
		return []string{}
	}
	return []string{fmt.Sprintf("%x", t.note)}
}

// StandardizedPaymentReference reads the note as text holding a 32-byte hex string, as
// written by clients that hex-encode references before storing them in the note. Any other
// note yields the zero hash.
func (t *AlgoTransaction) StandardizedPaymentReference() common.Hash {
	refs := t.References()
	if len(refs) != 1 {
		return encoding.ZeroBytes32()
	}
	decoded, err := encoding.HexToBytes(refs[0])
	if err != nil {
		return encoding.ZeroBytes32()
	}
	ref, ok := encoding.HexToBytes32(encoding.Unprefix0x(string(decoded)))
	if !ok {
		return encoding.ZeroBytes32()
	}
	return ref
}

func (t *AlgoTransaction) spentAmounts() []summary.AddressAmount {
	return []summary.AddressAmount{{
		Address: t.raw.Sender,
		Amount:  t.fee + t.amount + t.closeAmount,
		Utxo:    summary.NoUtxo,
	}}
}

func (t *AlgoTransaction) receivedAmounts() []summary.AddressAmount {
	received := make([]summary.AddressAmount, 0, 2)
	if t.receiver != "" {
		received = append(received, summary.AddressAmount{Address: t.receiver, Amount: t.amount, Utxo: summary.NoUtxo})
	}
	if t.closeTo != "" {
		received = append(received, summary.AddressAmount{Address: t.closeTo, Amount: t.closeAmount, Utxo: summary.NoUtxo})
	}
	return received
}

func (t *AlgoTransaction) SourceAddresses() []string    { return []string{t.raw.Sender} }
func (t *AlgoTransaction) ReceivingAddresses() []string { return addressesOf(t.receivedAmounts()) }

func (t *AlgoTransaction) SpentAmounts() []summary.AddressAmount    { return t.spentAmounts() }
func (t *AlgoTransaction) ReceivedAmounts() []summary.AddressAmount { return t.receivedAmounts() }

func (t *AlgoTransaction) Fee() (int64, error) { return t.fee, nil }

func (t *AlgoTransaction) FeeSigners() []string { return []string{t.raw.Sender} }

func (t *AlgoTransaction) SuccessStatus() (summary.SuccessStatus, error) {
	return summary.Success, nil
}

// PaymentSummary reports pay transactions; indices are ignored.
func (t *AlgoTransaction) PaymentSummary(_, _ int) summary.PaymentSummary {
	if !t.IsNativePayment() || t.receiver == "" {
		return summary.PaymentFailure(summary.PaymentNotNativePayment)
	}
	spent, received := t.spentAmounts(), t.receivedAmounts()
	source, destination := t.raw.Sender, t.receiver
	spentAmount := sumFor(spent, source) - sumFor(received, source)
	receivedAmount := sumFor(received, destination) - sumFor(spent, destination)
	if source == destination {
		spentAmount, receivedAmount = t.fee, 0
	}

	return summary.PaymentSummary{
		Status: summary.PaymentSuccess,
		Response: &summary.PaymentResponse{
			BlockTimestamp:         t.UnixTimestamp(),
			TransactionID:          t.StandardizedID().Hex(),
			TransactionStatus:      summary.Success,
			SourceAddressHash:      addressHash(chain.ALGO, source),
			SourceAddress:          source,
			ReceivingAddressHash:   addressHash(chain.ALGO, destination),
			ReceivingAddress:       destination,
			SpentAmount:            spentAmount,
			IntendedSpentAmount:    spentAmount,
			ReceivedAmount:         receivedAmount,
			IntendedReceivedAmount: receivedAmount,
			PaymentReference:       t.StandardizedPaymentReference(),
			OneToOne:               t.closeTo == "" || t.closeTo == destination,
		},
	}
}

// BalanceDecreasingSummary matches sourceAddressIndicator against the sender hash.
func (t *AlgoTransaction) BalanceDecreasingSummary(sourceAddressIndicator string) summary.BalanceDecreasingSummary {
	indicator, ok := encoding.HexToBytes32(sourceAddressIndicator)
	if !ok {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingNotValidSourceAddressFormat)
	}
	if addressHash(chain.ALGO, t.raw.Sender) != indicator {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingNoSourceAddress)
	}

	source := t.raw.Sender
	return summary.BalanceDecreasingSummary{
		Status: summary.BalanceDecreasingSuccess,
		Response: &summary.BalanceDecreasingResponse{
			BlockTimestamp:         t.UnixTimestamp(),
			TransactionID:          t.StandardizedID().Hex(),
			SourceAddressIndicator: sourceAddressIndicator,
			SourceAddressHash:      indicator,
			SourceAddress:          source,
			SpentAmount:            sumFor(t.spentAmounts(), source) - sumFor(t.receivedAmounts(), source),
			PaymentReference:       t.StandardizedPaymentReference(),
			TransactionStatus:      summary.Success,
		},
	}
}
