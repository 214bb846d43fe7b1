package folio

import "encoding/json"

// Kind is the closed taxonomy of ledger record kinds.
//
// Dispatch on Kind is exhaustive everywhere in the engine: adding a new kind
// is a compile-time visible change, not a string comparison that silently
// falls through to "ignored".
type Kind int

const (
	KindUnknown Kind = iota
	KindSplit
	KindTransferIn
	KindBuy
	KindSell
	KindTransferOut
	KindDividend
	KindInterest
	KindFee
	KindDeposit
	KindWithdrawal
	KindOther
	KindAdjustBalance
)

var kindNames = map[Kind]string{
	KindSplit:         "split",
	KindTransferIn:    "transfer-in",
	KindBuy:           "buy",
	KindSell:          "sell",
	KindTransferOut:   "transfer-out",
	KindDividend:      "dividend",
	KindInterest:      "interest",
	KindFee:           "fee",
	KindDeposit:       "deposit",
	KindWithdrawal:    "withdrawal",
	KindOther:         "other",
	KindAdjustBalance: "balance-adjustment",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind parses a kind name. Unknown names map to KindUnknown: the engine
// keeps such records in the stream (ordered last) rather than rejecting them.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// replayPriority defines the within-day order of record kinds, so that on a
// day with both an inbound and an outbound event for the same asset the
// inbound is applied first. Without it a same-day transfer-out before its
// transfer-in would trip the negative-position clamp.
func (k Kind) replayPriority() int {
	switch k {
	case KindSplit:
		return 10
	case KindTransferIn:
		return 20
	case KindBuy:
		return 30
	case KindSell:
		return 40
	case KindTransferOut:
		return 50
	case KindDividend:
		return 90
	case KindInterest:
		return 95
	case KindFee:
		return 96
	case KindDeposit:
		return 97
	case KindWithdrawal:
		return 98
	case KindOther:
		return 99
	case KindAdjustBalance:
		return 100
	default:
		return 1000
	}
}

// touchesHolding reports whether a record of this kind participates in the
// per-asset position replay. Cash-only kinds never do.
func (k Kind) touchesHolding() bool {
	switch k {
	case KindSplit, KindTransferIn, KindBuy, KindSell, KindTransferOut,
		KindDividend, KindInterest, KindFee:
		return true
	default:
		return false
	}
}

// realizes reports whether a record of this kind crystallizes gain or loss.
// Transfer-out moves units in kind and deliberately does not realize.
func (k Kind) realizes() bool {
	switch k {
	case KindSell, KindDividend, KindInterest, KindFee:
		return true
	default:
		return false
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = ParseKind(s)
	return nil
}
