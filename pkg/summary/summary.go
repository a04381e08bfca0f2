// Package summary defines the status taxonomies and result objects produced by the
// payment and balance-decreasing summary algorithms.
package summary

import (
	"github.com/ethereum/go-ethereum/common"
)

// PaymentStatus tags the outcome of a payment summary.
type PaymentStatus string

var (
	PaymentSuccess                        PaymentStatus = "success"
	PaymentCoinbase                       PaymentStatus = "coinbase"
	PaymentNotNativePayment               PaymentStatus = "notNativePayment"
	PaymentUnexpectedNumberOfParticipants PaymentStatus = "unexpectedNumberOfParticipants"
	PaymentInvalidInUtxo                  PaymentStatus = "invalidInUtxo"
	PaymentInvalidOutUtxo                 PaymentStatus = "invalidOutUtxo"
	PaymentNoSpentAmountAddress           PaymentStatus = "noSpentAmountAddress"
	PaymentNoReceiveAmountAddress         PaymentStatus = "noReceiveAmountAddress"
	// PaymentUnmappedResultCode marks an XRP transaction whose tec code has no classification.
	PaymentUnmappedResultCode PaymentStatus = "unmappedResultCode"
)

// PaymentStatuses lists every payment status.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{
		PaymentSuccess,
		PaymentCoinbase,
		PaymentNotNativePayment,
		PaymentUnexpectedNumberOfParticipants,
		PaymentInvalidInUtxo,
		PaymentInvalidOutUtxo,
		PaymentNoSpentAmountAddress,
		PaymentNoReceiveAmountAddress,
		PaymentUnmappedResultCode,
	}
}

// BalanceDecreasingStatus tags the outcome of a balance-decreasing summary.
type BalanceDecreasingStatus string

var (
	BalanceDecreasingSuccess                      BalanceDecreasingStatus = "success"
	BalanceDecreasingCoinbase                     BalanceDecreasingStatus = "coinbase"
	BalanceDecreasingNotValidSourceAddressFormat  BalanceDecreasingStatus = "notValidSourceAddressFormat"
	BalanceDecreasingNoSourceAddress              BalanceDecreasingStatus = "noSourceAddress"
	BalanceDecreasingInvalidTransactionDataObject BalanceDecreasingStatus = "invalidTransactionDataObject"
	BalanceDecreasingUnmappedResultCode           BalanceDecreasingStatus = "unmappedResultCode"
)

// BalanceDecreasingStatuses lists every balance-decreasing status.
func BalanceDecreasingStatuses() []BalanceDecreasingStatus {
	return []BalanceDecreasingStatus{
		BalanceDecreasingSuccess,
		BalanceDecreasingCoinbase,
		BalanceDecreasingNotValidSourceAddressFormat,
		BalanceDecreasingNoSourceAddress,
		BalanceDecreasingInvalidTransactionDataObject,
		BalanceDecreasingUnmappedResultCode,
	}
}

// SuccessStatus is the execution outcome of a mined transaction.
type SuccessStatus int

const (
	Success SuccessStatus = iota
	SenderFailure
	ReceiverFailure
)

func (s SuccessStatus) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case SenderFailure:
		return "SENDER_FAILURE"
	case ReceiverFailure:
		return "RECEIVER_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status by name in JSON output.
func (s SuccessStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AddressAmount is one input or output slot of a transaction. An empty Address with Unknown
// unset means the slot has no address (coinbase input, null-data output); Unknown means the
// address exists but was not resolved.
type AddressAmount struct {
	Address string `json:"address,omitempty"`
	Amount  int64  `json:"amount"`
	Utxo    int    `json:"utxo"`
	Unknown bool   `json:"unknown,omitempty"`
}

// NoUtxo marks an AddressAmount of a chain without output indices.
const NoUtxo = -1

// HasAddress reports whether the slot carries a resolved address.
func (a AddressAmount) HasAddress() bool {
	return !a.Unknown && a.Address != ""
}

// PaymentResponse is the successful payment summary body.
type PaymentResponse struct {
	BlockTimestamp         int64         `json:"blockTimestamp"`
	TransactionID          string        `json:"transactionId"`
	TransactionStatus      SuccessStatus `json:"transactionStatus"`
	SourceAddressHash      common.Hash   `json:"sourceAddressHash"`
	SourceAddress          string        `json:"sourceAddress"`
	ReceivingAddressHash   common.Hash   `json:"receivingAddressHash"`
	ReceivingAddress       string        `json:"receivingAddress"`
	SpentAmount            int64         `json:"spentAmount"`
	IntendedSpentAmount    int64         `json:"intendedSpentAmount"`
	ReceivedAmount         int64         `json:"receivedAmount"`
	IntendedReceivedAmount int64         `json:"intendedReceivedAmount"`
	PaymentReference       common.Hash   `json:"paymentReference"`
	OneToOne               bool          `json:"oneToOne"`
}

// PaymentSummary is either a bare failure status or Success with a Response.
type PaymentSummary struct {
	Status   PaymentStatus    `json:"status"`
	Response *PaymentResponse `json:"response,omitempty"`
}

// PaymentFailure builds a status-only payment summary.
func PaymentFailure(status PaymentStatus) PaymentSummary {
	return PaymentSummary{Status: status}
}

// BalanceDecreasingResponse is the successful balance-decreasing summary body.
type BalanceDecreasingResponse struct {
	BlockTimestamp         int64         `json:"blockTimestamp"`
	TransactionID          string        `json:"transactionId"`
	SourceAddressIndicator string        `json:"sourceAddressIndicator"`
	SourceAddressHash      common.Hash   `json:"sourceAddressHash"`
	SourceAddress          string        `json:"sourceAddress"`
	SpentAmount            int64         `json:"spentAmount"`
	PaymentReference       common.Hash   `json:"paymentReference"`
	TransactionStatus      SuccessStatus `json:"transactionStatus"`
}

// BalanceDecreasingSummary is either a bare failure status or Success with a Response.
type BalanceDecreasingSummary struct {
	Status   BalanceDecreasingStatus    `json:"status"`
	Response *BalanceDecreasingResponse `json:"response,omitempty"`
}

// BalanceDecreasingFailure builds a status-only balance-decreasing summary.
func BalanceDecreasingFailure(status BalanceDecreasingStatus) BalanceDecreasingSummary {
	return BalanceDecreasingSummary{Status: status}
}
