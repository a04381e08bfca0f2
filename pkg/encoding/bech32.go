package encoding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/txscript"
)

const (
	maxWitnessVersion    = 16
	minWitnessProgramLen = 2
	maxWitnessProgramLen = 40
)

var (
	// ErrSegWitHRP reports a human readable part that differs from the expected one.
	ErrSegWitHRP = errors.New("segwit hrp mismatch")
	// ErrSegWitVersion reports a witness version above 16 or a checksum variant that does not fit the version.
	ErrSegWitVersion = errors.New("invalid segwit version")
	// ErrSegWitProgram reports a witness program of invalid length.
	ErrSegWitProgram = errors.New("invalid segwit program length")
)

// DecodeSegWit decodes a bech32 (version 0) or bech32m (versions 1-16) segwit address.
// The underlying codec enforces case consistency, the 90 character limit, the separator
// position and the checksum; the version/checksum pairing and program bounds are checked here.
func DecodeSegWit(hrp, addr string) (byte, []byte, error) {
	gotHRP, data, variant, err := bech32.DecodeGeneric(addr)
	if err != nil {
		return 0, nil, fmt.Errorf("decode bech32: %w", err)
	}
	if gotHRP != strings.ToLower(hrp) {
		return 0, nil, fmt.Errorf("%w: got %q, want %q", ErrSegWitHRP, gotHRP, hrp)
	}
	if len(data) < 1 {
		return 0, nil, fmt.Errorf("%w: empty data", ErrSegWitVersion)
	}

	version := data[0]
	if version > maxWitnessVersion {
		return 0, nil, fmt.Errorf("%w: %d", ErrSegWitVersion, version)
	}
	if version == 0 && variant != bech32.Version0 {
		return 0, nil, fmt.Errorf("%w: version 0 requires bech32 checksum", ErrSegWitVersion)
	}
	if version != 0 && variant != bech32.VersionM {
		return 0, nil, fmt.Errorf("%w: version %d requires bech32m checksum", ErrSegWitVersion, version)
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, fmt.Errorf("regroup witness program: %w", err)
	}
	if len(program) < minWitnessProgramLen || len(program) > maxWitnessProgramLen {
		return 0, nil, fmt.Errorf("%w: %d", ErrSegWitProgram, len(program))
	}
	if version == 0 && len(program) != 20 && len(program) != 32 {
		return 0, nil, fmt.Errorf("%w: version 0 program of %d bytes", ErrSegWitProgram, len(program))
	}
	return version, program, nil
}

// EncodeSegWit encodes a witness program, choosing bech32 for version 0 and bech32m otherwise.
func EncodeSegWit(hrp string, version byte, program []byte) (string, error) {
	if version > maxWitnessVersion {
		return "", fmt.Errorf("%w: %d", ErrSegWitVersion, version)
	}
	if len(program) < minWitnessProgramLen || len(program) > maxWitnessProgramLen {
		return "", fmt.Errorf("%w: %d", ErrSegWitProgram, len(program))
	}
	if version == 0 && len(program) != 20 && len(program) != 32 {
		return "", fmt.Errorf("%w: version 0 program of %d bytes", ErrSegWitProgram, len(program))
	}

	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("regroup witness program: %w", err)
	}
	data := append([]byte{version}, converted...)

	var encoded string
	if version == 0 {
		encoded, err = bech32.Encode(hrp, data)
	} else {
		encoded, err = bech32.EncodeM(hrp, data)
	}
	if err != nil {
		return "", fmt.Errorf("encode bech32: %w", err)
	}

	// round trip guards against programs the decoder would reject
	if _, _, err := DecodeSegWit(hrp, encoded); err != nil {
		return "", err
	}
	return encoded, nil
}

// SegWitScript builds the output script for a witness program: OP_0 <program> for version 0
// and OP_(0x50+version) <program> for versions 1-16.
func SegWitScript(version byte, program []byte) ([]byte, error) {
	if version > maxWitnessVersion {
		return nil, fmt.Errorf("%w: %d", ErrSegWitVersion, version)
	}
	opcode := byte(txscript.OP_0)
	if version > 0 {
		opcode = txscript.OP_1 - 1 + version
	}
	return txscript.NewScriptBuilder().
		AddOp(opcode).
		AddData(program).
		Script()
}
