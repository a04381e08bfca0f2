package transaction

import (
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

func sumFor(amounts []summary.AddressAmount, addr string) int64 {
	var total int64
	for _, a := range amounts {
		if a.HasAddress() && a.Address == addr {
			total += a.Amount
		}
	}
	return total
}

// PaymentSummary reconstructs the payment from input inUtxo to output outUtxo, netting
// change returned to the source and self-payments of the destination.
func (t *UtxoTransaction) PaymentSummary(inUtxo, outUtxo int) summary.PaymentSummary {
	if t.isCoinbase() {
		return summary.PaymentFailure(summary.PaymentCoinbase)
	}
	if inUtxo < 0 || inUtxo >= len(t.inputs) {
		return summary.PaymentFailure(summary.PaymentInvalidInUtxo)
	}
	if outUtxo < 0 || outUtxo >= len(t.outputs) {
		return summary.PaymentFailure(summary.PaymentInvalidOutUtxo)
	}

	spent := t.inputs[inUtxo]
	if !spent.HasAddress() {
		return summary.PaymentFailure(summary.PaymentNoSpentAmountAddress)
	}
	received := t.outputs[outUtxo]
	if !received.HasAddress() {
		return summary.PaymentFailure(summary.PaymentNoReceiveAmountAddress)
	}
	source, destination := spent.Address, received.Address

	oneToOne := true
	for _, in := range t.inputs {
		if in.HasAddress() && in.Address != source && in.Address != destination {
			oneToOne = false
		}
	}
	for _, out := range t.outputs {
		if out.Address == "" && out.Amount > 0 {
			oneToOne = false
		}
		if out.Address != "" && out.Address != source && out.Address != destination {
			oneToOne = false
		}
	}

	spentAmount := sumFor(t.inputs, source) - sumFor(t.outputs, source)
	receivedAmount := sumFor(t.outputs, destination) - sumFor(t.inputs, destination)

	return summary.PaymentSummary{
		Status: summary.PaymentSuccess,
		Response: &summary.PaymentResponse{
			BlockTimestamp:         t.UnixTimestamp(),
			TransactionID:          t.StandardizedID().Hex(),
			TransactionStatus:      summary.Success,
			SourceAddressHash:      addressHash(t.chain, source),
			SourceAddress:          source,
			ReceivingAddressHash:   addressHash(t.chain, destination),
			ReceivingAddress:       destination,
			SpentAmount:            spentAmount,
			IntendedSpentAmount:    spentAmount,
			ReceivedAmount:         receivedAmount,
			IntendedReceivedAmount: receivedAmount,
			PaymentReference:       t.StandardizedPaymentReference(),
			OneToOne:               oneToOne,
		},
	}
}

// BalanceDecreasingSummary attributes the balance decrease of the input whose index is
// encoded by sourceAddressIndicator as a 32-byte hex integer.
func (t *UtxoTransaction) BalanceDecreasingSummary(sourceAddressIndicator string) summary.BalanceDecreasingSummary {
	indicator, ok := encoding.HexToBytes32(sourceAddressIndicator)
	if !ok {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingNotValidSourceAddressFormat)
	}
	index := indicator.Big()
	if !index.IsInt64() || index.Int64() >= int64(len(t.raw.Vin)) {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingNotValidSourceAddressFormat)
	}
	if t.isCoinbase() {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingCoinbase)
	}

	in := t.inputs[index.Int64()]
	if !in.HasAddress() {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingInvalidTransactionDataObject)
	}

	spentAmount := sumFor(t.inputs, in.Address) - sumFor(t.outputs, in.Address)
	return summary.BalanceDecreasingSummary{
		Status: summary.BalanceDecreasingSuccess,
		Response: &summary.BalanceDecreasingResponse{
			BlockTimestamp:         t.UnixTimestamp(),
			TransactionID:          t.StandardizedID().Hex(),
			SourceAddressIndicator: sourceAddressIndicator,
			SourceAddressHash:      addressHash(t.chain, in.Address),
			SourceAddress:          in.Address,
			SpentAmount:            spentAmount,
			PaymentReference:       t.StandardizedPaymentReference(),
			TransactionStatus:      summary.Success,
		},
	}
}
