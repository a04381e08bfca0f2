package address

import (
	"bytes"
	"crypto/sha512"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
)

const (
	algoAddressLen  = 58
	algoPublicKey   = 32
	algoChecksumLen = 4
)

// AlgoAddress is an Algorand account address: unpadded base32 of the public key followed
// by the last four bytes of its SHA-512/256 digest.
type AlgoAddress struct {
	text      string
	typ       Type
	publicKey []byte
}

// NewAlgo classifies an Algorand address.
func NewAlgo(text string) *AlgoAddress {
	a := &AlgoAddress{text: text, typ: Invalid}
	if len(text) != algoAddressLen {
		return a
	}
	raw, err := encoding.AlgorandBase32.DecodeString(text)
	if err != nil || len(raw) != algoPublicKey+algoChecksumLen {
		return a
	}
	publicKey, checksum := raw[:algoPublicKey], raw[algoPublicKey:]
	if !bytes.Equal(AlgoChecksum(publicKey), checksum) {
		return a
	}
	a.typ = Standard
	a.publicKey = publicKey
	return a
}

// AlgoChecksum returns the four checksum bytes appended to an Algorand public key.
func AlgoChecksum(publicKey []byte) []byte {
	digest := sha512.Sum512_256(publicKey)
	return digest[len(digest)-algoChecksumLen:]
}

// EncodeAlgo renders a 32-byte public key as an Algorand address.
func EncodeAlgo(publicKey []byte) (string, error) {
	if len(publicKey) != algoPublicKey {
		return "", chain.NewError(chain.CodeInvalidParameter, "algorand public key must be 32 bytes")
	}
	raw := append(append([]byte(nil), publicKey...), AlgoChecksum(publicKey)...)
	return encoding.AlgorandBase32.EncodeToString(raw), nil
}

func (a *AlgoAddress) Chain() chain.Chain { return chain.ALGO }
func (a *AlgoAddress) Text() string       { return a.text }
func (a *AlgoAddress) Type() Type         { return a.typ }
func (a *AlgoAddress) IsValid() bool      { return a.typ != Invalid }
func (a *AlgoAddress) IsMainnet() bool    { return a.IsValid() }

func (a *AlgoAddress) StandardizedHash() (common.Hash, error) {
	if !a.IsValid() {
		return common.Hash{}, invalidAddress(chain.ALGO, a.text)
	}
	return encoding.StandardAddressHash(a.text), nil
}
