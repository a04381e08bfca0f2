package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
)

// xrpTecResults attributes every known tec code to the sender or the receiver. Entries are
// data: codes not listed here are reported as unmapped rather than guessed.
var xrpTecResults = map[string]summary.SuccessStatus{
	"tecCLAIM":                         summary.SenderFailure,
	"tecCRYPTOCONDITION_ERROR":         summary.SenderFailure,
	"tecDIR_FULL":                      summary.SenderFailure,
	"tecDUPLICATE":                     summary.SenderFailure,
	"tecDST_TAG_NEEDED":                summary.ReceiverFailure,
	"tecEXPIRED":                       summary.SenderFailure,
	"tecFAILED_PROCESSING":             summary.SenderFailure,
	"tecFROZEN":                        summary.SenderFailure,
	"tecHAS_OBLIGATIONS":               summary.SenderFailure,
	"tecINSUF_RESERVE_LINE":            summary.SenderFailure,
	"tecINSUF_RESERVE_OFFER":           summary.SenderFailure,
	"tecINSUFF_FEE":                    summary.SenderFailure,
	"tecINSUFFICIENT_FUNDS":            summary.SenderFailure,
	"tecINSUFFICIENT_PAYMENT":          summary.SenderFailure,
	"tecINSUFFICIENT_RESERVE":          summary.SenderFailure,
	"tecINTERNAL":                      summary.SenderFailure,
	"tecINVARIANT_FAILED":              summary.SenderFailure,
	"tecKILLED":                        summary.SenderFailure,
	"tecMAX_SEQUENCE_REACHED":          summary.SenderFailure,
	"tecNEED_MASTER_KEY":               summary.SenderFailure,
	"tecNFTOKEN_BUY_SELL_MISMATCH":     summary.SenderFailure,
	"tecNFTOKEN_OFFER_TYPE_MISMATCH":   summary.SenderFailure,
	"tecNO_ALTERNATIVE_KEY":            summary.SenderFailure,
	"tecNO_AUTH":                       summary.SenderFailure,
	"tecNO_DST":                        summary.ReceiverFailure,
	"tecNO_DST_INSUF_XRP":              summary.ReceiverFailure,
	"tecNO_ENTRY":                      summary.SenderFailure,
	"tecNO_ISSUER":                     summary.SenderFailure,
	"tecNO_LINE":                       summary.SenderFailure,
	"tecNO_LINE_INSUF_RESERVE":         summary.SenderFailure,
	"tecNO_LINE_REDUNDANT":             summary.SenderFailure,
	"tecNO_PERMISSION":                 summary.ReceiverFailure,
	"tecNO_REGULAR_KEY":                summary.SenderFailure,
	"tecNO_SUITABLE_NFTOKEN_PAGE":      summary.SenderFailure,
	"tecNO_TARGET":                     summary.SenderFailure,
	"tecOBJECT_NOT_FOUND":              summary.SenderFailure,
	"tecOVERSIZE":                      summary.SenderFailure,
	"tecOWNERS":                        summary.SenderFailure,
	"tecPATH_DRY":                      summary.SenderFailure,
	"tecPATH_PARTIAL":                  summary.SenderFailure,
	"tecTOO_SOON":                      summary.SenderFailure,
	"tecUNFUNDED":                      summary.SenderFailure,
	"tecUNFUNDED_ADD":                  summary.SenderFailure,
	"tecUNFUNDED_PAYMENT":              summary.SenderFailure,
	"tecUNFUNDED_OFFER":                summary.SenderFailure,
	"tecCANT_ACCEPT_OWN_NFTOKEN_OFFER": summary.SenderFailure,
}

// XrpTecResults returns a copy of the tec classification table.
func XrpTecResults() map[string]summary.SuccessStatus {
	out := make(map[string]summary.SuccessStatus, len(xrpTecResults))
	for code, status := range xrpTecResults {
		out[code] = status
	}
	return out
}

// XrpSuccessStatus classifies a TransactionResult code: tes succeeds, tec consults the
// table, tef/tel/tem/ter fail on the sender side.
func XrpSuccessStatus(result string) (summary.SuccessStatus, error) {
	if len(result) < 3 {
		return 0, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("malformed transaction result %q", result))
	}
	switch prefix := result[:3]; prefix {
	case "tes":
		return summary.Success, nil
	case "tec":
		status, ok := xrpTecResults[result]
		if !ok {
			return 0, chain.NewError(chain.CodeUnmappedResultCode, fmt.Sprintf("unmapped result code %q", result))
		}
		return status, nil
	case "tef", "tel", "tem", "ter":
		return summary.SenderFailure, nil
	default:
		return 0, chain.NewError(chain.CodeInvalidData, fmt.Sprintf("unknown result class of %q", result))
	}
}
