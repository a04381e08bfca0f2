package transaction

import (
	"github.com/btcsuite/btcd/btcjson"
)

// UtxoRawTransaction is the Bitcoin Core getrawtransaction verbose shape. Dogecoin nodes
// return the same fields.
type UtxoRawTransaction struct {
	Hex           string         `json:"hex,omitempty"`
	TxID          string         `json:"txid"`
	Hash          string         `json:"hash,omitempty"`
	Size          int32          `json:"size,omitempty"`
	Vsize         int32          `json:"vsize,omitempty"`
	Version       uint32         `json:"version"`
	LockTime      uint32         `json:"locktime"`
	Vin           []UtxoVin      `json:"vin"`
	Vout          []btcjson.Vout `json:"vout"`
	BlockHash     string         `json:"blockhash,omitempty"`
	Confirmations uint64         `json:"confirmations,omitempty"`
	Time          int64          `json:"time,omitempty"`
	Blocktime     int64          `json:"blocktime,omitempty"`
}

// UtxoVin is a transaction input. Prevout is filled by nodes queried with verbosity 2
// (bitcoind 25+) and makes the input self-resolving.
type UtxoVin struct {
	Coinbase  string             `json:"coinbase,omitempty"`
	TxID      string             `json:"txid,omitempty"`
	Vout      uint32             `json:"vout"`
	ScriptSig *btcjson.ScriptSig `json:"scriptSig,omitempty"`
	Sequence  uint32             `json:"sequence"`
	Witness   []string           `json:"txinwitness,omitempty"`
	Prevout   *UtxoPrevout       `json:"prevout,omitempty"`
}

// IsCoinbase reports whether the input carries a coinbase marker.
func (v UtxoVin) IsCoinbase() bool {
	return v.Coinbase != ""
}

// UtxoPrevout is the output spent by an input, as embedded by the node.
type UtxoPrevout struct {
	Generated    bool                       `json:"generated"`
	Height       int64                      `json:"height"`
	Value        float64                    `json:"value"`
	ScriptPubKey btcjson.ScriptPubKeyResult `json:"scriptPubKey"`
}

// FromTxRawResult maps an rpcclient result onto the raw shape.
func FromTxRawResult(src btcjson.TxRawResult) UtxoRawTransaction {
	vin := make([]UtxoVin, 0, len(src.Vin))
	for _, in := range src.Vin {
		vin = append(vin, UtxoVin{
			Coinbase:  in.Coinbase,
			TxID:      in.Txid,
			Vout:      in.Vout,
			ScriptSig: in.ScriptSig,
			Sequence:  in.Sequence,
			Witness:   append([]string(nil), in.Witness...),
		})
	}
	return UtxoRawTransaction{
		Hex:           src.Hex,
		TxID:          src.Txid,
		Hash:          src.Hash,
		Size:          src.Size,
		Vsize:         src.Vsize,
		Version:       uint32(src.Version),
		LockTime:      src.LockTime,
		Vin:           vin,
		Vout:          append([]btcjson.Vout(nil), src.Vout...),
		BlockHash:     src.BlockHash,
		Confirmations: src.Confirmations,
		Time:          src.Time,
		Blocktime:     src.Blocktime,
	}
}
