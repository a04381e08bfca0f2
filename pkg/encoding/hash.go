package encoding

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// StandardHash returns the Keccak-256 digest of b.
func StandardHash(b []byte) common.Hash {
	return crypto.Keccak256Hash(b)
}

// StandardAddressHash fingerprints a canonical address string. Callers pass the canonical
// form (bech32 addresses lowercased) so equal addresses hash equally across encodings.
func StandardAddressHash(addr string) common.Hash {
	return crypto.Keccak256Hash([]byte(addr))
}

// StandardTransactionID maps a 32-byte hex identifier to its canonical hash form.
// A missing 0x prefix is accepted; anything that is not 32 bytes of hex yields the zero hash.
func StandardTransactionID(id string) common.Hash {
	b, ok := HexToBytes32(id)
	if !ok {
		return ZeroBytes32()
	}
	return b
}

// CanonicalSegWit lowercases bech32 addresses so mixed-case inputs share one fingerprint.
func CanonicalSegWit(addr string) string {
	return strings.ToLower(addr)
}
