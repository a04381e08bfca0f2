package transaction

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

// PrevOutput is the resolved output spent by a UTXO input. An empty Address marks an
// output without a single paying address.
type PrevOutput struct {
	Address string `json:"address"`
	Value   int64  `json:"value"`
}

// OutPoint identifies the previous output referenced by input Index.
type OutPoint struct {
	Index int
	TxID  string
	Vout  uint32
}

// UtxoTransaction is a Bitcoin or Dogecoin transaction. Inputs without an embedded prevout
// stay unknown until Enrich supplies them; Enrich may be called once.
type UtxoTransaction struct {
	chain      chain.Chain
	network    chain.Network
	raw        UtxoRawTransaction
	decoder    scriptDecoder
	inputs     []summary.AddressAmount
	outputs    []summary.AddressAmount
	references []string
	enriched   bool
}

// NewUtxo validates the raw payload and derives its inputs and outputs.
func NewUtxo(c chain.Chain, network chain.Network, raw UtxoRawTransaction) (*UtxoTransaction, error) {
	if !c.IsUTXO() {
		return nil, chain.NewError(chain.CodeUnsupportedChain, fmt.Sprintf("%s is not a utxo chain", c))
	}
	decoder, err := newScriptDecoder(c, network)
	if err != nil {
		return nil, err
	}
	if _, err := hex.DecodeString(encoding.Unprefix0x(raw.TxID)); err != nil || raw.TxID == "" {
		return nil, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("malformed txid %q", raw.TxID))
	}

	tx := &UtxoTransaction{chain: c, network: network, raw: raw, decoder: decoder}
	if err := tx.buildOutputs(); err != nil {
		return nil, err
	}
	if err := tx.buildInputs(nil); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewUtxoFromRPC builds a transaction from an rpcclient result.
func NewUtxoFromRPC(c chain.Chain, network chain.Network, src btcjson.TxRawResult) (*UtxoTransaction, error) {
	return NewUtxo(c, network, FromTxRawResult(src))
}

// DecodeUtxo builds a transaction from getrawtransaction JSON.
func DecodeUtxo(c chain.Chain, network chain.Network, data []byte) (*UtxoTransaction, error) {
	var raw UtxoRawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chain.WrapError(chain.CodeInvalidData, "decode utxo transaction", err)
	}
	return NewUtxo(c, network, raw)
}

// CoinToElementary converts a node-reported coin amount to satoshis (or koinu for Dogecoin).
func CoinToElementary(value float64) (int64, error) {
	// Dogecoin has no supply cap, so the bound is int64 rather than btcutil.MaxSatoshi.
	if math.Abs(value)*btcutil.SatoshiPerBitcoin >= math.MaxInt64 {
		return 0, fmt.Errorf("amount %g out of range", value)
	}
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}

func (t *UtxoTransaction) buildOutputs() error {
	t.outputs = make([]summary.AddressAmount, 0, len(t.raw.Vout))
	t.references = make([]string, 0)
	for _, vout := range t.raw.Vout {
		value, err := CoinToElementary(vout.Value)
		if err != nil {
			return chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("tx %s vout %d value", t.raw.TxID, vout.N), err)
		}
		addr, err := t.decoder.address(vout.ScriptPubKey)
		if err != nil {
			return chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("tx %s vout %d script", t.raw.TxID, vout.N), err)
		}
		if data, ok := nullData(vout.ScriptPubKey); ok {
			t.references = append(t.references, hex.EncodeToString(data))
		}
		t.outputs = append(t.outputs, summary.AddressAmount{Address: addr, Amount: value, Utxo: int(vout.N)})
	}
	return nil
}

func (t *UtxoTransaction) buildInputs(enrichment map[int]PrevOutput) error {
	inputs := make([]summary.AddressAmount, 0, len(t.raw.Vin))
	for i, vin := range t.raw.Vin {
		switch {
		case vin.IsCoinbase():
			inputs = append(inputs, summary.AddressAmount{Utxo: i})
		case vin.Prevout != nil:
			value, err := CoinToElementary(vin.Prevout.Value)
			if err != nil {
				return chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("tx %s vin %d prevout value", t.raw.TxID, i), err)
			}
			addr, err := t.decoder.address(vin.Prevout.ScriptPubKey)
			if err != nil {
				return chain.WrapError(chain.CodeInvalidData, fmt.Sprintf("tx %s vin %d prevout script", t.raw.TxID, i), err)
			}
			inputs = append(inputs, summary.AddressAmount{Address: addr, Amount: value, Utxo: i})
		default:
			prev, ok := enrichment[i]
			if !ok {
				inputs = append(inputs, summary.AddressAmount{Utxo: i, Unknown: true})
				continue
			}
			inputs = append(inputs, summary.AddressAmount{Address: prev.Address, Amount: prev.Value, Utxo: i})
		}
	}
	t.inputs = inputs
	return nil
}

// Enrich attaches the outputs spent by inputs that carry no embedded prevout, keyed by
// input index. It may be called once; later calls return chain.ErrAlreadyEnriched.
func (t *UtxoTransaction) Enrich(prev map[int]PrevOutput) error {
	if t.enriched {
		return chain.NewError(chain.CodeAlreadyEnriched, fmt.Sprintf("tx %s already enriched", t.raw.TxID))
	}
	for idx, out := range prev {
		if idx < 0 || idx >= len(t.raw.Vin) {
			return chain.NewError(chain.CodeInvalidParameter, fmt.Sprintf("tx %s has no input %d", t.raw.TxID, idx))
		}
		if t.raw.Vin[idx].IsCoinbase() {
			return chain.NewError(chain.CodeInvalidParameter, fmt.Sprintf("tx %s input %d is coinbase", t.raw.TxID, idx))
		}
		if out.Value < 0 {
			return chain.NewError(chain.CodeInvalidData, fmt.Sprintf("tx %s input %d negative value", t.raw.TxID, idx))
		}
	}
	if err := t.buildInputs(prev); err != nil {
		return err
	}
	t.enriched = true
	return nil
}

// IsEnriched reports whether Enrich has been called.
func (t *UtxoTransaction) IsEnriched() bool {
	return t.enriched
}

// IsFullyEnriched reports whether every non-coinbase input is resolved.
func (t *UtxoTransaction) IsFullyEnriched() bool {
	for _, in := range t.inputs {
		if in.Unknown {
			return false
		}
	}
	return true
}

// MissingPrevOutputs lists the inputs still waiting for enrichment.
func (t *UtxoTransaction) MissingPrevOutputs() []OutPoint {
	missing := make([]OutPoint, 0)
	for i, in := range t.inputs {
		if !in.Unknown {
			continue
		}
		vin := t.raw.Vin[i]
		missing = append(missing, OutPoint{Index: i, TxID: vin.TxID, Vout: vin.Vout})
	}
	return missing
}

// Network returns the network the scripts were decoded for.
func (t *UtxoTransaction) Network() chain.Network { return t.network }

// Raw returns the payload the transaction was built from.
func (t *UtxoTransaction) Raw() UtxoRawTransaction { return t.raw }

func (t *UtxoTransaction) Chain() chain.Chain { return t.chain }
func (t *UtxoTransaction) ID() string         { return encoding.Unprefix0x(t.raw.TxID) }

func (t *UtxoTransaction) StandardizedID() common.Hash {
	return encoding.StandardTransactionID(t.raw.TxID)
}

func (t *UtxoTransaction) UnixTimestamp() int64 {
	if t.raw.Blocktime != 0 {
		return t.raw.Blocktime
	}
	return t.raw.Time
}

func (t *UtxoTransaction) isCoinbase() bool {
	if len(t.raw.Vin) == 0 {
		return true
	}
	for _, vin := range t.raw.Vin {
		if vin.IsCoinbase() {
			return true
		}
	}
	return false
}

// Type is coinbase, or payment refined by how many inputs are resolved.
func (t *UtxoTransaction) Type() string {
	if t.isCoinbase() {
		return TypeCoinbase
	}
	resolved := 0
	for _, in := range t.inputs {
		if !in.Unknown {
			resolved++
		}
	}
	switch resolved {
	case 0:
		return TypePayment
	case len(t.inputs):
		return TypeFullPayment
	default:
		return TypePartialPayment
	}
}

func (t *UtxoTransaction) IsNativePayment() bool { return true }

func (t *UtxoTransaction) References() []string {
	return append([]string(nil), t.references...)
}

func (t *UtxoTransaction) StandardizedPaymentReference() common.Hash {
	return standardizedReference(t.references)
}

func (t *UtxoTransaction) SourceAddresses() []string    { return addressesOf(t.inputs) }
func (t *UtxoTransaction) ReceivingAddresses() []string { return addressesOf(t.outputs) }

func (t *UtxoTransaction) SpentAmounts() []summary.AddressAmount    { return cloneAmounts(t.inputs) }
func (t *UtxoTransaction) ReceivedAmounts() []summary.AddressAmount { return cloneAmounts(t.outputs) }

// Fee is inputs minus outputs; it needs every input resolved. Coinbase transactions pay no fee.
func (t *UtxoTransaction) Fee() (int64, error) {
	if t.isCoinbase() {
		return 0, nil
	}
	if !t.IsFullyEnriched() {
		return 0, chain.NewError(chain.CodeInvalidParameter, fmt.Sprintf("tx %s fee needs all inputs resolved", t.raw.TxID))
	}
	var in, out int64
	for _, a := range t.inputs {
		in += a.Amount
	}
	for _, a := range t.outputs {
		out += a.Amount
	}
	return in - out, nil
}

// FeeSigners lists the distinct resolved input addresses.
func (t *UtxoTransaction) FeeSigners() []string {
	seen := make(map[string]struct{})
	signers := make([]string, 0)
	for _, in := range t.inputs {
		if !in.HasAddress() {
			continue
		}
		if _, ok := seen[in.Address]; ok {
			continue
		}
		seen[in.Address] = struct{}{}
		signers = append(signers, in.Address)
	}
	return signers
}

// SuccessStatus is always Success: mined UTXO transactions cannot partially fail.
func (t *UtxoTransaction) SuccessStatus() (summary.SuccessStatus, error) {
	return summary.Success, nil
}
