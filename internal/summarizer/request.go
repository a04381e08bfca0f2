package summarizer

import (
	"encoding/json"

	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

// Request asks for the summaries of one raw transaction. The payment summary is always
// computed; the balance-decreasing summary only when SourceAddressIndicator is set.
type Request struct {
	Chain                  chain.Chain     `json:"chain" validate:"required"`
	Network                chain.Network   `json:"network,omitempty"`
	Transaction            json.RawMessage `json:"transaction" validate:"required"`
	InUtxo                 int             `json:"inUtxo" validate:"gte=0"`
	OutUtxo                int             `json:"outUtxo" validate:"gte=0"`
	SourceAddressIndicator string          `json:"sourceAddressIndicator,omitempty"`
}

// Result carries the summaries of one request, or the hard failure that prevented them.
type Result struct {
	Chain             chain.Chain                       `json:"chain"`
	TransactionID     string                            `json:"transactionId,omitempty"`
	Type              string                            `json:"type,omitempty"`
	Fee               *int64                            `json:"fee,omitempty"`
	Payment           *summary.PaymentSummary           `json:"payment,omitempty"`
	BalanceDecreasing *summary.BalanceDecreasingSummary `json:"balanceDecreasing,omitempty"`
	Error             string                            `json:"error,omitempty"`
	ErrorCode         chain.Code                        `json:"errorCode,omitempty"`
}

func failed(c chain.Chain, err error) Result {
	return Result{Chain: c, Error: err.Error(), ErrorCode: chain.CodeOf(err)}
}
