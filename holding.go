package folio

import "github.com/shopspring/decimal"

// defaultEpsilon is the threshold below which a residual position is treated
// as zero, so decimal drift cannot leave a phantom near-zero holding.
var defaultEpsilon = decimal.RequireFromString("0.000000001")

// Holding is the derived state of one (portfolio, asset) pair: running units
// and cost basis in the asset's currency, plus the realized totals.
//
// RealizedGain, RealizedCost and RealizedProceeds accumulate in whatever
// currency each disposal event resolved to. They are not necessarily
// comparable across holdings: callers must convert each holding's realized
// figures using its own recorded currency before summing.
type Holding struct {
	AssetID  string
	Ticker   string
	Currency string // the asset's trading currency

	Units            Quantity
	CostBasis        Money // in the asset's currency
	AvgUnitCost      Money // CostBasis / Units, zero when Units is zero
	RealizedGain     Money
	RealizedCost     Money
	RealizedProceeds Money

	eps decimal.Decimal
}

// NewHolding seeds a zero accumulator for an asset.
func NewHolding(asset Asset) *Holding {
	return &Holding{
		AssetID:     asset.ID,
		Ticker:      asset.Ticker,
		Currency:    asset.Currency,
		CostBasis:   M(0, asset.Currency),
		AvgUnitCost: M(0, asset.Currency),
		eps:         defaultEpsilon,
	}
}

// Apply replays one record against the holding and returns the warnings the
// record raised, if any. Records are expected in replay order; out-of-order
// data degrades to the defensive clamps rather than failing.
func (h *Holding) Apply(r Record, asset Asset) []Warning {
	var warnings []Warning

	switch r.Kind {
	case KindSplit:
		if !r.SplitRatio.IsPositive() {
			return []Warning{warnf(WarnBadSplitRatio, r.ID,
				"split ratio must be positive, got %s", r.SplitRatio)}
		}
		h.Units = h.Units.Mul(Q(r.SplitRatio))
		h.recomputeAverage()

	case KindBuy, KindTransferIn:
		cost, ok := resolveCost(r, asset)
		if !ok {
			warnings = append(warnings, warnf(WarnUnresolvedAmount, r.ID,
				"no usable cost for %s of %s", r.Kind, asset.Ticker))
		}
		h.Units = h.Units.Add(r.Quantity.Abs())
		h.CostBasis = h.CostBasis.Add(cost)
		warnings = append(warnings, h.settle(r)...)

	case KindSell, KindTransferOut:
		qty := r.Quantity.Abs()
		// the average must be captured before units are mutated.
		costRemoved := h.AvgUnitCost.Mul(qty)
		h.CostBasis = h.CostBasis.Sub(costRemoved)
		h.Units = h.Units.Sub(qty)
		if r.Kind == KindSell {
			warnings = append(warnings, h.realizeSale(r, asset, costRemoved)...)
		}
		warnings = append(warnings, h.settle(r)...)

	case KindDividend, KindInterest:
		proceeds, ok := resolveProceeds(r, asset)
		if !ok {
			warnings = append(warnings, warnf(WarnUnresolvedAmount, r.ID,
				"no usable amount for %s of %s", r.Kind, asset.Ticker))
		}
		warnings = append(warnings, h.addIncome(r, proceeds)...)

	case KindFee:
		fee := feeAmount(r)
		if mixed := h.subRealized(fee); mixed {
			warnings = append(warnings, currencyMixWarning(r, fee))
		}

	default:
		// cash-only kinds have no effect on a holding.
	}

	return warnings
}

// resolveCost resolves the asset-currency cost added by a buy or transfer-in.
// Nothing usable resolves to zero so a malformed row cannot corrupt the
// average; the caller flags the record for enrichment instead.
func resolveCost(r Record, asset Asset) (Money, bool) {
	if !r.Settlement.IsZero() && matchesCurrency(r.Settlement, asset.Currency) {
		return M(r.Settlement.Decimal().Abs(), asset.Currency), true
	}
	if r.Kind == KindTransferIn && !r.Cash.IsZero() && matchesCurrency(r.Cash, asset.Currency) {
		return M(r.Cash.Decimal().Abs(), asset.Currency), true
	}
	if !r.UnitPrice.IsZero() {
		v := r.Quantity.Decimal().Abs().Mul(r.UnitPrice.Abs()).Add(r.Fee.Abs())
		return M(v, asset.Currency), true
	}
	return M(0, asset.Currency), false
}

// resolveProceeds resolves the proceeds of a realizing record, preferring the
// cash leg, then the settlement leg, then price times quantity less fee.
func resolveProceeds(r Record, asset Asset) (Money, bool) {
	if !r.Cash.IsZero() {
		return M(r.Cash.Decimal().Abs(), currencyOr(r.Cash.Currency(), asset.Currency)), true
	}
	if !r.Settlement.IsZero() {
		return M(r.Settlement.Decimal().Abs(), currencyOr(r.Settlement.Currency(), asset.Currency)), true
	}
	if !r.UnitPrice.IsZero() {
		v := r.Quantity.Decimal().Abs().Mul(r.UnitPrice.Abs()).Sub(r.Fee.Abs())
		return M(v, asset.Currency), true
	}
	return M(0, asset.Currency), false
}

// realizeSale crystallizes the gain of a sell record. When the proceeds
// currency differs from the asset currency, the removed cost is converted at
// the exchange rate implied by this very record (|cash| / |settlement|),
// defaulting to 1. This keeps every realized figure traceable to its
// originating event; an external FX table would not.
func (h *Holding) realizeSale(r Record, asset Asset, costRemoved Money) []Warning {
	var warnings []Warning

	proceeds, ok := resolveProceeds(r, asset)
	if !ok {
		warnings = append(warnings, warnf(WarnUnresolvedAmount, r.ID,
			"no usable proceeds for sell of %s", asset.Ticker))
	}

	converted := costRemoved
	if proceeds.Currency() != "" && proceeds.Currency() != asset.Currency {
		rate := decimal.New(1, 0)
		if !r.Cash.IsZero() && !r.Settlement.IsZero() {
			rate = r.Cash.Decimal().Abs().Div(r.Settlement.Decimal().Abs())
		}
		converted = M(costRemoved.Decimal().Mul(rate), proceeds.Currency())
	}

	gain := M(proceeds.Decimal().Sub(converted.Decimal()), proceeds.Currency())
	for _, add := range []struct {
		dst    *Money
		amount Money
	}{
		{&h.RealizedGain, gain},
		{&h.RealizedProceeds, proceeds},
		{&h.RealizedCost, converted},
	} {
		if mixed := accumulate(add.dst, add.amount); mixed {
			warnings = append(warnings, currencyMixWarning(r, add.amount))
		}
	}
	return warnings
}

// addIncome accumulates a dividend or interest payment: pure income, no cost leg.
func (h *Holding) addIncome(r Record, proceeds Money) []Warning {
	var warnings []Warning
	if mixed := accumulate(&h.RealizedGain, proceeds); mixed {
		warnings = append(warnings, currencyMixWarning(r, proceeds))
	}
	if mixed := accumulate(&h.RealizedProceeds, proceeds); mixed {
		warnings = append(warnings, currencyMixWarning(r, proceeds))
	}
	return warnings
}

func (h *Holding) subRealized(fee Money) bool {
	return accumulate(&h.RealizedGain, fee.Neg())
}

// settle applies the post-event clamp and keeps average unit cost consistent
// with units and cost basis.
func (h *Holding) settle(r Record) []Warning {
	var warnings []Warning
	if h.Units.Decimal().LessThanOrEqual(h.eps) {
		if h.Units.Decimal().LessThan(h.eps.Neg()) {
			warnings = append(warnings, warnf(WarnNegativeClamp, r.ID,
				"position of %s would go negative (%s), clamped to zero", h.Ticker, h.Units))
		}
		h.Units = Q(0)
		h.CostBasis = M(0, h.Currency)
	}
	h.recomputeAverage()
	return warnings
}

func (h *Holding) recomputeAverage() {
	if h.Units.IsPositive() {
		h.AvgUnitCost = h.CostBasis.Div(h.Units)
	} else {
		h.AvgUnitCost = M(0, h.Currency)
	}
}

// feeAmount resolves the magnitude of a fee record. The fee is assumed to be
// expressed in the proceeds-currency domain of the surrounding activity; the
// cash leg currency is used when present.
func feeAmount(r Record) Money {
	if !r.Fee.IsZero() {
		return M(r.Fee.Abs(), r.Cash.Currency())
	}
	if !r.Cash.IsZero() {
		return M(r.Cash.Decimal().Abs(), r.Cash.Currency())
	}
	return M(r.Settlement.Decimal().Abs(), r.Settlement.Currency())
}

// accumulate adds amount into dst keeping the first resolved currency, and
// reports whether two distinct currencies were mixed.
func accumulate(dst *Money, amount Money) (mixed bool) {
	mixed = dst.cur != "" && amount.cur != "" && dst.cur != amount.cur
	*dst = Money{value: dst.value.Add(amount.value), cur: currencyOr(dst.cur, amount.cur)}
	return mixed
}

func currencyOr(cur, fallback string) string {
	if cur != "" {
		return cur
	}
	return fallback
}

func matchesCurrency(m Money, currency string) bool {
	return m.Currency() == currency || m.Currency() == ""
}

func currencyMixWarning(r Record, amount Money) Warning {
	return warnf(WarnCurrencyMix, r.ID,
		"realized totals mix currencies (adding %s)", amount.Currency())
}
