package transaction

import (
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

// PaymentSummary reports the native payment. Indices are ignored: XRP payments have a
// single source and destination.
func (t *XrpTransaction) PaymentSummary(_, _ int) summary.PaymentSummary {
	if t.raw.TransactionType != XrpPaymentType {
		return summary.PaymentFailure(summary.PaymentNotNativePayment)
	}
	amount, native, err := nativeDrops(t.raw.Amount)
	if err != nil || !native {
		return summary.PaymentFailure(summary.PaymentNotNativePayment)
	}
	status, err := t.SuccessStatus()
	if err != nil {
		return summary.PaymentFailure(summary.PaymentUnmappedResultCode)
	}

	response := &summary.PaymentResponse{
		BlockTimestamp:    t.UnixTimestamp(),
		TransactionID:     t.StandardizedID().Hex(),
		TransactionStatus: status,
		PaymentReference:  t.StandardizedPaymentReference(),
		OneToOne:          true,
	}

	if status == summary.Success {
		if len(t.spent) != 1 || len(t.received) != 1 {
			return summary.PaymentFailure(summary.PaymentUnexpectedNumberOfParticipants)
		}
		source, destination := t.spent[0], t.received[0]
		response.SourceAddress = source.Address
		response.ReceivingAddress = destination.Address
		response.SpentAmount = source.Amount
		response.IntendedSpentAmount = source.Amount
		response.ReceivedAmount = destination.Amount
		response.IntendedReceivedAmount = destination.Amount
	} else {
		response.SourceAddress = t.raw.Account
		response.ReceivingAddress = t.raw.Destination
		response.SpentAmount = t.fee
		response.IntendedSpentAmount = amount + t.fee
		response.ReceivedAmount = 0
		response.IntendedReceivedAmount = amount
	}
	response.SourceAddressHash = addressHash(chain.XRP, response.SourceAddress)
	response.ReceivingAddressHash = addressHash(chain.XRP, response.ReceivingAddress)

	return summary.PaymentSummary{Status: summary.PaymentSuccess, Response: response}
}

// BalanceDecreasingSummary matches sourceAddressIndicator against the standardized hashes of
// accounts whose balance decreased and of the signing account.
func (t *XrpTransaction) BalanceDecreasingSummary(sourceAddressIndicator string) summary.BalanceDecreasingSummary {
	indicator, ok := encoding.HexToBytes32(sourceAddressIndicator)
	if !ok {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingNotValidSourceAddressFormat)
	}
	status, err := t.SuccessStatus()
	if err != nil {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingUnmappedResultCode)
	}

	var (
		source  string
		matched bool
	)
	for _, s := range t.spent {
		if addressHash(chain.XRP, s.Address) == indicator {
			source, matched = s.Address, true
			break
		}
	}
	if !matched && addressHash(chain.XRP, t.raw.Account) == indicator {
		source, matched = t.raw.Account, true
	}
	if !matched {
		return summary.BalanceDecreasingFailure(summary.BalanceDecreasingNoSourceAddress)
	}

	return summary.BalanceDecreasingSummary{
		Status: summary.BalanceDecreasingSuccess,
		Response: &summary.BalanceDecreasingResponse{
			BlockTimestamp:         t.UnixTimestamp(),
			TransactionID:          t.StandardizedID().Hex(),
			SourceAddressIndicator: sourceAddressIndicator,
			SourceAddressHash:      indicator,
			SourceAddress:          source,
			SpentAmount:            sumFor(t.spent, source) - sumFor(t.received, source),
			PaymentReference:       t.StandardizedPaymentReference(),
			TransactionStatus:      status,
		},
	}
}
