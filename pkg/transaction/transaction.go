// Package transaction normalizes chain-native transaction payloads into a uniform model and
// derives payment and balance-decreasing summaries from them.
package transaction

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/address"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

// Type values returned by Transaction.Type.
const (
	TypeCoinbase       = "coinbase"
	TypePayment        = "payment"
	TypePartialPayment = "partial_payment"
	TypeFullPayment    = "full_payment"
)

// Transaction is the capability set shared by every chain family. Summary methods never
// fail; their outcome is carried in the returned status.
type Transaction interface {
	Chain() chain.Chain
	ID() string
	StandardizedID() common.Hash
	UnixTimestamp() int64
	Type() string
	IsNativePayment() bool

	References() []string
	StandardizedPaymentReference() common.Hash

	SourceAddresses() []string
	ReceivingAddresses() []string
	SpentAmounts() []summary.AddressAmount
	ReceivedAmounts() []summary.AddressAmount
	Fee() (int64, error)
	FeeSigners() []string
	SuccessStatus() (summary.SuccessStatus, error)

	PaymentSummary(inUtxo, outUtxo int) summary.PaymentSummary
	BalanceDecreasingSummary(sourceAddressIndicator string) summary.BalanceDecreasingSummary
}

// standardizedReference picks the single well-formed 32-byte reference, or the zero hash.
func standardizedReference(refs []string) common.Hash {
	if len(refs) != 1 {
		return encoding.ZeroBytes32()
	}
	ref, ok := encoding.HexToBytes32(refs[0])
	if !ok {
		return encoding.ZeroBytes32()
	}
	return ref
}

// addressHash hashes an address the node reported. Node-reported addresses are valid by
// construction; anything else is hashed verbatim so summaries stay total.
func addressHash(c chain.Chain, addr string) common.Hash {
	h, err := address.StandardizedHash(c, addr)
	if err != nil {
		return encoding.StandardAddressHash(addr)
	}
	return h
}

func addressesOf(amounts []summary.AddressAmount) []string {
	out := make([]string, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, a.Address)
	}
	return out
}

func cloneAmounts(amounts []summary.AddressAmount) []summary.AddressAmount {
	return append([]summary.AddressAmount(nil), amounts...)
}

var (
	_ Transaction = (*UtxoTransaction)(nil)
	_ Transaction = (*XrpTransaction)(nil)
	_ Transaction = (*AlgoTransaction)(nil)
)
