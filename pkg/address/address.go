// Package address validates and classifies chain-native address strings and derives their
// chain-agnostic standardized hash.
package address

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
)

// Type is the classified subtype of an address.
type Type string

var (
	Invalid Type = "INVALID"

	P2PKH          Type = "P2PKH"
	P2SH           Type = "P2SH"
	P2WPKH         Type = "P2WPKH"
	P2WSH          Type = "P2WSH"
	P2TR           Type = "P2TR"
	WitnessUnknown Type = "WITNESS_UNKNOWN"

	TestP2PKH          Type = "TEST_P2PKH"
	TestP2SH           Type = "TEST_P2SH"
	TestP2WPKH         Type = "TEST_P2WPKH"
	TestP2WSH          Type = "TEST_P2WSH"
	TestP2TR           Type = "TEST_P2TR"
	TestWitnessUnknown Type = "TEST_WITNESS_UNKNOWN"

	Classic  Type = "CLASSIC"
	Standard Type = "STANDARD"
)

// Address is the capability set shared by every chain family.
type Address interface {
	Chain() chain.Chain
	// Text returns the address exactly as supplied.
	Text() string
	Type() Type
	IsValid() bool
	IsMainnet() bool
	// StandardizedHash returns chain.ErrInvalidAddress for invalid addresses.
	StandardizedHash() (common.Hash, error)
}

// ScriptAddress is implemented by UTXO addresses, which map to an output script.
type ScriptAddress interface {
	Address
	OutputScript() ([]byte, error)
}

// New classifies text as an address of the given chain. Invalid text yields an address
// whose Type is Invalid; only an unsupported chain is an error.
func New(c chain.Chain, text string) (Address, error) {
	switch c {
	case chain.BTC:
		return NewBtc(text), nil
	case chain.DOGE:
		return NewDoge(text), nil
	case chain.XRP:
		return NewXrp(text), nil
	case chain.ALGO:
		return NewAlgo(text), nil
	default:
		return nil, chain.NewError(chain.CodeUnsupportedChain, fmt.Sprintf("unsupported chain %q", c))
	}
}

// IsValid reports whether text is a valid address of chain c; unsupported chains are never valid.
func IsValid(c chain.Chain, text string) bool {
	addr, err := New(c, text)
	if err != nil {
		return false
	}
	return addr.IsValid()
}

// StandardizedHash hashes text as an address of chain c.
func StandardizedHash(c chain.Chain, text string) (common.Hash, error) {
	addr, err := New(c, text)
	if err != nil {
		return common.Hash{}, err
	}
	return addr.StandardizedHash()
}

func invalidAddress(c chain.Chain, text string) error {
	return chain.NewError(chain.CodeInvalidAddress, fmt.Sprintf("invalid %s address %q", c, text))
}
