// Package chain defines the chain families handled by the client and the shared hard-failure errors.
package chain

import (
	"fmt"
	"strings"
)

// Chain identifies the source chain family of an address, transaction or block.
type Chain string

var (
	BTC  Chain = "BTC"
	DOGE Chain = "DOGE"
	XRP  Chain = "XRP"
	ALGO Chain = "ALGO"
)

// Network selects mainnet or testnet address encodings where a chain distinguishes them.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Chains lists every supported chain family.
func Chains() []Chain {
	return []Chain{BTC, DOGE, XRP, ALGO}
}

// IsUTXO reports whether the chain uses the vin/vout transaction model.
func (c Chain) IsUTXO() bool {
	return c == BTC || c == DOGE
}

// Parse maps user input such as "btc", "bitcoin" or "xrpl" to a Chain.
func Parse(value string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "btc", "bitcoin":
		return BTC, nil
	case "doge", "dogecoin":
		return DOGE, nil
	case "xrp", "xrpl", "ripple":
		return XRP, nil
	case "algo", "algorand":
		return ALGO, nil
	default:
		return "", NewError(CodeUnsupportedChain, fmt.Sprintf("unsupported chain %q", value))
	}
}

// ParseNetwork maps user input to a Network, defaulting to mainnet for an empty value.
func ParseNetwork(value string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "main", "mainnet":
		return Mainnet, nil
	case "test", "testnet", "testnet3":
		return Testnet, nil
	default:
		return "", NewError(CodeInvalidParameter, fmt.Sprintf("unsupported network %q", value))
	}
}
