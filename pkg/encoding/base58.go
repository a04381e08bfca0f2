// Package encoding implements the byte-level codecs shared by the address and transaction models.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	bitcoinAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	rippleAlphabet  = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"
)

var (
	// ErrBase58Alphabet reports a character outside the expected base58 alphabet.
	ErrBase58Alphabet = errors.New("character outside base58 alphabet")
	// ErrBase58Checksum reports a double-SHA256 checksum mismatch.
	ErrBase58Checksum = errors.New("base58 checksum mismatch")
	// ErrBase58Format reports input too short to carry a version and checksum.
	ErrBase58Format = errors.New("base58 input too short")
)

// rippleToBitcoin and bitcoinToRipple translate between the two 58-symbol alphabets by index,
// so the Ripple codec can reuse the Bitcoin base conversion unchanged.
var rippleToBitcoin, bitcoinToRipple = alphabetTables(rippleAlphabet, bitcoinAlphabet)

func alphabetTables(from, to string) (map[rune]byte, map[rune]byte) {
	forward := make(map[rune]byte, len(from))
	backward := make(map[rune]byte, len(to))
	for i := 0; i < len(from); i++ {
		forward[rune(from[i])] = to[i]
		backward[rune(to[i])] = from[i]
	}
	return forward, backward
}

// Base58CheckDecode decodes a Bitcoin-alphabet Base58Check string into its version byte and payload.
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	for _, r := range s {
		if !strings.ContainsRune(bitcoinAlphabet, r) {
			return 0, nil, ErrBase58Alphabet
		}
	}
	payload, version, err = base58.CheckDecode(s)
	if err != nil {
		return 0, nil, mapBase58Error(err)
	}
	return version, payload, nil
}

// DogeBase58CheckDecode is the Dogecoin-named variant of Base58CheckDecode; the algorithm is identical.
func DogeBase58CheckDecode(s string) (version byte, payload []byte, err error) {
	return Base58CheckDecode(s)
}

// Base58CheckEncode encodes payload with a leading version byte and a double-SHA256 checksum.
func Base58CheckEncode(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// RippleBase58CheckDecode decodes a Ripple-alphabet Base58Check string.
func RippleBase58CheckDecode(s string) (version byte, payload []byte, err error) {
	translated, err := translate(s, rippleToBitcoin)
	if err != nil {
		return 0, nil, err
	}
	payload, version, err = base58.CheckDecode(translated)
	if err != nil {
		return 0, nil, mapBase58Error(err)
	}
	return version, payload, nil
}

// RippleBase58CheckEncode encodes payload with the Ripple alphabet.
func RippleBase58CheckEncode(version byte, payload []byte) string {
	encoded := base58.CheckEncode(payload, version)
	// bitcoin alphabet output always translates
	out, _ := translate(encoded, bitcoinToRipple)
	return out
}

// RippleBase58Decode decodes a Ripple-alphabet string without checksum handling.
func RippleBase58Decode(s string) ([]byte, error) {
	translated, err := translate(s, rippleToBitcoin)
	if err != nil {
		return nil, err
	}
	return base58.Decode(translated), nil
}

func translate(s string, table map[rune]byte) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := table[r]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrBase58Alphabet, r)
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func mapBase58Error(err error) error {
	switch {
	case errors.Is(err, base58.ErrChecksum):
		return ErrBase58Checksum
	case errors.Is(err, base58.ErrInvalidFormat):
		return ErrBase58Format
	default:
		return err
	}
}
