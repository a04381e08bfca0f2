package address

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/encoding"
)

const xrpDecodedLen = 25

var xrpClassicPattern = regexp.MustCompile(`^r[rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz]{26,34}$`)

// XrpAddress is an XRP Ledger classic address. The ledger has a single addressing scheme,
// so every valid address reports IsMainnet.
type XrpAddress struct {
	text      string
	typ       Type
	accountID []byte
}

// NewXrp classifies an XRP classic address.
func NewXrp(text string) *XrpAddress {
	a := &XrpAddress{text: text, typ: Invalid}
	if !xrpClassicPattern.MatchString(text) {
		return a
	}
	raw, err := encoding.RippleBase58Decode(text)
	if err != nil || len(raw) != xrpDecodedLen {
		return a
	}
	version, accountID, err := encoding.RippleBase58CheckDecode(text)
	if err != nil || version != 0 {
		return a
	}
	a.typ = Classic
	a.accountID = accountID
	return a
}

func (a *XrpAddress) Chain() chain.Chain { return chain.XRP }
func (a *XrpAddress) Text() string       { return a.text }
func (a *XrpAddress) Type() Type         { return a.typ }
func (a *XrpAddress) IsValid() bool      { return a.typ != Invalid }
func (a *XrpAddress) IsMainnet() bool    { return a.IsValid() }

// AccountID returns the 20-byte account identifier.
func (a *XrpAddress) AccountID() ([]byte, error) {
	if !a.IsValid() {
		return nil, invalidAddress(chain.XRP, a.text)
	}
	return append([]byte(nil), a.accountID...), nil
}

func (a *XrpAddress) StandardizedHash() (common.Hash, error) {
	if !a.IsValid() {
		return common.Hash{}, invalidAddress(chain.XRP, a.text)
	}
	return encoding.StandardAddressHash(a.text), nil
}
