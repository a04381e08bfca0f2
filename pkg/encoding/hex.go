package encoding

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AlgorandBase32 is the unpadded RFC 4648 alphabet used for Algorand addresses and transaction ids.
var AlgorandBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Unprefix0x strips a leading 0x or 0X.
func Unprefix0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// Prefix0x adds a leading 0x when missing.
func Prefix0x(s string) string {
	return "0x" + Unprefix0x(s)
}

// HexToBytes decodes a hex string with or without 0x prefix.
func HexToBytes(s string) ([]byte, error) {
	b, err := hexutil.Decode(Prefix0x(s))
	if err != nil {
		return nil, fmt.Errorf("decode hex %q: %w", s, err)
	}
	return b, nil
}

// IsValidBytes32Hex reports whether s is exactly 32 bytes of hex, optionally 0x prefixed.
func IsValidBytes32Hex(s string) bool {
	raw := Unprefix0x(s)
	if len(raw) != 2*common.HashLength {
		return false
	}
	_, err := hex.DecodeString(raw)
	return err == nil
}

// HexToBytes32 decodes a 32-byte hex string.
func HexToBytes32(s string) (common.Hash, bool) {
	if !IsValidBytes32Hex(s) {
		return common.Hash{}, false
	}
	return common.HexToHash(Prefix0x(s)), true
}

// ZeroBytes32 is the sentinel for "no reference".
func ZeroBytes32() common.Hash {
	return common.Hash{}
}

// Base64ToHex re-encodes standard base64 as lowercase hex without prefix.
func Base64ToHex(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Base32ToHex re-encodes unpadded RFC 4648 base32 as lowercase hex without prefix.
func Base32ToHex(s string) (string, error) {
	b, err := AlgorandBase32.DecodeString(strings.ToUpper(s))
	if err != nil {
		return "", fmt.Errorf("decode base32: %w", err)
	}
	return hex.EncodeToString(b), nil
}
