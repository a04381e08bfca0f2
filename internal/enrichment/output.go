// Package enrichment resolves the previous outputs spent by UTXO transaction inputs and
// attaches them to transactions through their write-once enrichment.
package enrichment

import (
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
)

// Output is a transaction output as kept by sources.
type Output struct {
	TxID      string   `json:"txid"`
	Index     uint32   `json:"index"`
	Value     int64    `json:"value"`
	Addresses []string `json:"addresses,omitempty"`
}

// PrevOutput converts the output into the enrichment value of an input spending it. Outputs
// not paying exactly one address resolve to an empty address.
func (o Output) PrevOutput() transaction.PrevOutput {
	prev := transaction.PrevOutput{Value: o.Value}
	if len(o.Addresses) == 1 {
		prev.Address = o.Addresses[0]
	}
	return prev
}

// OutputsOf lists the outputs created by tx.
func OutputsOf(tx *transaction.UtxoTransaction) []Output {
	received := tx.ReceivedAmounts()
	outputs := make([]Output, 0, len(received))
	for _, r := range received {
		out := Output{TxID: tx.ID(), Index: uint32(r.Utxo), Value: r.Amount}
		if r.Address != "" {
			out.Addresses = []string{r.Address}
		}
		outputs = append(outputs, out)
	}
	return outputs
}

func findOutput(outputs []Output, index uint32) (Output, bool) {
	for _, o := range outputs {
		if o.Index == index {
			return o, true
		}
	}
	return Output{}, false
}
