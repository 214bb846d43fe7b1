package folio

import "fmt"

// WarningCode classifies the recoverable per-record issues a replay can hit.
type WarningCode int

const (
	// WarnUnknownAsset flags a record referencing an asset id absent from the
	// registry. The record is excluded from both replays.
	WarnUnknownAsset WarningCode = iota + 1
	// WarnBadSplitRatio flags a split with a missing or non-positive ratio.
	// The split is skipped; the rest of the replay proceeds.
	WarnBadSplitRatio
	// WarnUnresolvedAmount flags a record for which no usable cost or proceeds
	// figure could be resolved by any fallback. The record is still applied to
	// units with a zero amount: a data-quality signal, not a failure.
	WarnUnresolvedAmount
	// WarnNegativeClamp flags a record whose application would have driven
	// units negative. Units and cost basis are clamped to zero.
	WarnNegativeClamp
	// WarnCurrencyMix flags realized figures accumulating amounts resolved to
	// different currencies within one holding.
	WarnCurrencyMix
)

func (c WarningCode) String() string {
	switch c {
	case WarnUnknownAsset:
		return "unknown-asset"
	case WarnBadSplitRatio:
		return "bad-split-ratio"
	case WarnUnresolvedAmount:
		return "unresolved-amount"
	case WarnNegativeClamp:
		return "negative-clamp"
	case WarnCurrencyMix:
		return "currency-mix"
	default:
		return "unknown"
	}
}

// Warning reports that a record was applied with a defensive fallback.
// Warnings degrade the replay record-by-record: one bad row can never blank
// an entire portfolio view, and it is never raised as an error.
type Warning struct {
	Code     WarningCode
	RecordID string
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: record %s: %s", w.Code, w.RecordID, w.Message)
}

func warnf(code WarningCode, recordID, format string, args ...any) Warning {
	return Warning{Code: code, RecordID: recordID, Message: fmt.Sprintf(format, args...)}
}
