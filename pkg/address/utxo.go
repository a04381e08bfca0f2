package address

import (
	"strings"

	"github.com/btcsuite/btcd/txscript"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
)

// Legacy address length bounds, counted after the leading prefix character.
const (
	minLegacyLen = 25
	maxLegacyLen = 34
	hash160Len   = 20
)

type legacyPrefix struct {
	version byte
	typ     Type
	mainnet bool
	script  bool
}

type segwitPrefix struct {
	hrp     string
	mainnet bool
}

var (
	btcLegacyPrefixes = map[byte]legacyPrefix{
		'1': {version: 0x00, typ: P2PKH, mainnet: true},
		'3': {version: 0x05, typ: P2SH, mainnet: true, script: true},
		'm': {version: 0x6f, typ: TestP2PKH},
		'n': {version: 0x6f, typ: TestP2PKH},
		'2': {version: 0xc4, typ: TestP2SH, script: true},
	}
	btcSegwitPrefixes = []segwitPrefix{
		{hrp: "bc", mainnet: true},
		{hrp: "tb"},
	}
	dogeLegacyPrefixes = map[byte]legacyPrefix{
		'D': {version: 0x1e, typ: P2PKH, mainnet: true},
		'A': {version: 0x16, typ: P2SH, mainnet: true, script: true},
		'9': {version: 0x16, typ: P2SH, mainnet: true, script: true},
		'n': {version: 0x71, typ: TestP2PKH},
		'2': {version: 0xc4, typ: TestP2SH, script: true},
	}
)

// utxoAddress holds the classification shared by Bitcoin and Dogecoin addresses.
type utxoAddress struct {
	chain   chain.Chain
	text    string
	typ     Type
	mainnet bool

	// legacy
	hash   []byte
	script bool

	// segwit
	segwit  bool
	version byte
	program []byte
}

// BtcAddress is a Bitcoin address: Base58Check legacy or bech32/bech32m segwit.
type BtcAddress struct {
	utxoAddress
}

// DogeAddress is a Dogecoin Base58Check address.
type DogeAddress struct {
	utxoAddress
}

// NewBtc classifies a Bitcoin address.
func NewBtc(text string) *BtcAddress {
	a := &BtcAddress{utxoAddress{chain: chain.BTC, text: text, typ: Invalid}}
	lower := strings.ToLower(text)
	for _, p := range btcSegwitPrefixes {
		if strings.HasPrefix(lower, p.hrp+"1") {
			a.classifySegwit(p)
			return a
		}
	}
	a.classifyLegacy(btcLegacyPrefixes, encoding.Base58CheckDecode)
	return a
}

// NewDoge classifies a Dogecoin address.
func NewDoge(text string) *DogeAddress {
	a := &DogeAddress{utxoAddress{chain: chain.DOGE, text: text, typ: Invalid}}
	a.classifyLegacy(dogeLegacyPrefixes, encoding.DogeBase58CheckDecode)
	return a
}

func (a *utxoAddress) classifyLegacy(prefixes map[byte]legacyPrefix, decode func(string) (byte, []byte, error)) {
	if len(a.text) < 1+minLegacyLen || len(a.text) > 1+maxLegacyLen {
		return
	}
	prefix, ok := prefixes[a.text[0]]
	if !ok {
		return
	}
	// The version byte must agree with the prefix and the payload must be a hash160.
	version, payload, err := decode(a.text)
	if err != nil || version != prefix.version || len(payload) != hash160Len {
		return
	}
	a.typ = prefix.typ
	a.mainnet = prefix.mainnet
	a.hash = payload
	a.script = prefix.script
}

func (a *utxoAddress) classifySegwit(p segwitPrefix) {
	version, program, err := encoding.DecodeSegWit(p.hrp, a.text)
	if err != nil {
		return
	}
	var typ Type
	switch {
	case version == 0 && len(program) == 20:
		typ = P2WPKH
	case version == 0 && len(program) == 32:
		typ = P2WSH
	case version == 1 && len(program) == 32:
		typ = P2TR
	default:
		typ = WitnessUnknown
	}
	if !p.mainnet {
		typ = testVariant(typ)
	}
	a.typ = typ
	a.mainnet = p.mainnet
	a.segwit = true
	a.version = version
	a.program = program
}

func testVariant(t Type) Type {
	switch t {
	case P2WPKH:
		return TestP2WPKH
	case P2WSH:
		return TestP2WSH
	case P2TR:
		return TestP2TR
	default:
		return TestWitnessUnknown
	}
}

func (a *utxoAddress) Chain() chain.Chain { return a.chain }
func (a *utxoAddress) Text() string       { return a.text }
func (a *utxoAddress) Type() Type         { return a.typ }
func (a *utxoAddress) IsValid() bool      { return a.typ != Invalid }
func (a *utxoAddress) IsMainnet() bool    { return a.mainnet }

// IsSegWit reports whether the address is a valid witness program address.
func (a *utxoAddress) IsSegWit() bool { return a.segwit }

// WitnessProgram returns the decoded witness version and program of a segwit address.
func (a *utxoAddress) WitnessProgram() (byte, []byte, error) {
	if !a.segwit {
		return 0, nil, invalidAddress(a.chain, a.text)
	}
	return a.version, append([]byte(nil), a.program...), nil
}

// canonical lowercases segwit text; bech32 is case-insensitive.
func (a *utxoAddress) canonical() string {
	if a.segwit {
		return encoding.CanonicalSegWit(a.text)
	}
	return a.text
}

func (a *utxoAddress) StandardizedHash() (common.Hash, error) {
	if !a.IsValid() {
		return common.Hash{}, invalidAddress(a.chain, a.text)
	}
	return encoding.StandardAddressHash(a.canonical()), nil
}

// OutputScript reconstructs the pkScript paying to the address.
func (a *utxoAddress) OutputScript() ([]byte, error) {
	if !a.IsValid() {
		return nil, invalidAddress(a.chain, a.text)
	}
	if a.segwit {
		return encoding.SegWitScript(a.version, a.program)
	}
	if a.script {
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_HASH160).
			AddData(a.hash).
			AddOp(txscript.OP_EQUAL).
			Script()
	}
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(a.hash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}
