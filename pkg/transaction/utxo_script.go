package transaction

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
)

var (
	dogeMainNetParams = chaincfg.Params{
		Name:             "dogecoin-mainnet",
		PubKeyHashAddrID: 0x1e,
		ScriptHashAddrID: 0x16,
		PrivateKeyID:     0x9e,
	}
	dogeTestNetParams = chaincfg.Params{
		Name:             "dogecoin-testnet",
		PubKeyHashAddrID: 0x71,
		ScriptHashAddrID: 0xc4,
		PrivateKeyID:     0xf1,
	}
)

// scriptDecoder extracts the single paying address and OP_RETURN data of output scripts.
type scriptDecoder struct {
	params *chaincfg.Params
}

func newScriptDecoder(c chain.Chain, network chain.Network) (scriptDecoder, error) {
	params, err := chainParams(c, network)
	if err != nil {
		return scriptDecoder{}, err
	}
	return scriptDecoder{params: params}, nil
}

func chainParams(c chain.Chain, network chain.Network) (*chaincfg.Params, error) {
	switch {
	case c == chain.BTC && network == chain.Mainnet:
		return &chaincfg.MainNetParams, nil
	case c == chain.BTC && network == chain.Testnet:
		return &chaincfg.TestNet3Params, nil
	case c == chain.DOGE && network == chain.Mainnet:
		return &dogeMainNetParams, nil
	case c == chain.DOGE && network == chain.Testnet:
		return &dogeTestNetParams, nil
	default:
		return nil, chain.NewError(chain.CodeUnsupportedChain, fmt.Sprintf("no script params for %s %s", c, network))
	}
}

// address returns the single address paid by the script, or "" for scripts that do not pay
// exactly one address (null data, bare multisig, non-standard).
func (d scriptDecoder) address(script btcjson.ScriptPubKeyResult) (string, error) {
	if script.Address != "" {
		return script.Address, nil
	}
	if len(script.Addresses) == 1 {
		return script.Addresses[0], nil
	}
	if len(script.Addresses) > 1 || script.Hex == "" {
		return "", nil
	}

	scriptBytes, err := hex.DecodeString(script.Hex)
	if err != nil {
		return "", err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil {
		return "", err
	}
	if len(addrs) != 1 {
		return "", nil
	}
	return addrs[0].EncodeAddress(), nil
}

// nullData returns the concatenated pushes of an OP_RETURN script and whether the
// script is a null-data script at all.
func nullData(script btcjson.ScriptPubKeyResult) ([]byte, bool) {
	scriptBytes, err := hex.DecodeString(script.Hex)
	if err != nil || len(scriptBytes) == 0 || scriptBytes[0] != txscript.OP_RETURN {
		return nil, false
	}

	var data []byte
	tokenizer := txscript.MakeScriptTokenizer(0, scriptBytes[1:])
	for tokenizer.Next() {
		data = append(data, tokenizer.Data()...)
	}
	if tokenizer.Err() != nil {
		return nil, false
	}
	return data, true
}
