package folio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CashBalance is one signed per-currency balance derived from the ledger.
type CashBalance struct {
	Currency string
	Balance  decimal.Decimal
}

// Money returns the balance as a currency-tagged amount.
func (b CashBalance) Money() Money { return M(b.Balance, b.Currency) }

// CashLedger accumulates signed cash movements per settlement currency over
// the coarse-ordered record stream. Zero balances are dropped from the
// result, never from the accumulation.
type CashLedger struct {
	balances map[string]decimal.Decimal
	// requireCashAsset gates deposit, withdrawal and fee effects behind the
	// record's asset being a cash placeholder.
	requireCashAsset bool
}

// NewCashLedger creates an empty cash ledger, seeded at zero for the given
// operating currencies.
func NewCashLedger(currencies ...string) *CashLedger {
	c := &CashLedger{balances: make(map[string]decimal.Decimal)}
	for _, cur := range currencies {
		c.balances[cur] = decimal.Zero
	}
	return c
}

// Apply accumulates the cash effect of one record. The asset is the record's
// joined reference data; ok reports whether the join succeeded.
func (c *CashLedger) Apply(r Record, asset Asset, ok bool) {
	currency, amount, has := c.cashEffect(r, asset, ok)
	if !has {
		return
	}
	c.balances[currency] = c.balances[currency].Add(amount)
}

// cashEffect resolves a record into a (currency, signed amount) pair.
func (c *CashLedger) cashEffect(r Record, asset Asset, ok bool) (string, decimal.Decimal, bool) {
	switch r.Kind {
	case KindAdjustBalance:
		// quantity encodes direction here, not share count.
		if r.Cash.IsZero() {
			return "", decimal.Zero, false
		}
		amount := r.Cash.Decimal().Abs()
		if r.Quantity.IsNegative() {
			amount = amount.Neg()
		}
		return r.Cash.Currency(), amount, true

	case KindDividend, KindInterest:
		// no cash leg recorded means no cash effect: do not guess.
		if r.Cash.IsZero() {
			return "", decimal.Zero, false
		}
		return r.Cash.Currency(), r.Cash.Decimal().Abs(), true

	case KindDeposit:
		if c.gated(asset, ok) || r.Cash.IsZero() {
			return "", decimal.Zero, false
		}
		return r.Cash.Currency(), r.Cash.Decimal().Abs(), true

	case KindWithdrawal, KindFee:
		if c.gated(asset, ok) || r.Cash.IsZero() {
			return "", decimal.Zero, false
		}
		return r.Cash.Currency(), r.Cash.Decimal().Abs().Neg(), true

	case KindOther:
		// amount taken as already signed.
		if r.Cash.IsZero() {
			return "", decimal.Zero, false
		}
		return r.Cash.Currency(), r.Cash.Decimal(), true

	case KindBuy, KindSell:
		sign := decimal.New(1, 0)
		if r.Kind == KindBuy {
			sign = sign.Neg()
		}
		if !r.Cash.IsZero() {
			return r.Cash.Currency(), r.Cash.Decimal().Abs().Mul(sign), true
		}
		// absent an explicit cash leg the effect is assumed to land in the
		// asset's own currency.
		if !ok {
			return "", decimal.Zero, false
		}
		amount := r.Quantity.Decimal().Abs().Mul(r.UnitPrice.Abs())
		if r.Kind == KindBuy {
			amount = amount.Add(r.Fee.Abs())
		} else {
			amount = amount.Sub(r.Fee.Abs())
		}
		if amount.IsZero() {
			return "", decimal.Zero, false
		}
		return asset.Currency, amount.Mul(sign), true

	case KindTransferIn, KindTransferOut:
		// in-kind movement of a real asset has no cash effect.
		if !ok || !asset.IsCash() || r.Cash.IsZero() {
			return "", decimal.Zero, false
		}
		amount := r.Cash.Decimal().Abs()
		if r.Kind == KindTransferOut {
			amount = amount.Neg()
		}
		return currencyOr(r.Cash.Currency(), asset.CashCurrency()), amount, true

	default:
		// split, unknown: no cash effect.
		return "", decimal.Zero, false
	}
}

func (c *CashLedger) gated(asset Asset, ok bool) bool {
	return c.requireCashAsset && (!ok || !asset.IsCash())
}

// Balances returns one balance per currency whose accumulated magnitude
// exceeds eps, sorted by currency code.
func (c *CashLedger) Balances(eps decimal.Decimal) []CashBalance {
	out := make([]CashBalance, 0, len(c.balances))
	for cur, bal := range c.balances {
		if bal.Abs().LessThanOrEqual(eps) {
			continue
		}
		out = append(out, CashBalance{Currency: cur, Balance: bal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

// Balance returns the accumulated balance of one currency, zero if untouched.
func (c *CashLedger) Balance(currency string) Money {
	return M(c.balances[currency], currency)
}

// SingleCurrencyCash is the simplified variant for portfolios constrained to
// one settlement currency. It applies the same per-kind sign rules but only
// ever touches its one bucket, and treats a same-currency buy or sell without
// an explicit cash leg as computable directly from price and quantity.
type SingleCurrencyCash struct {
	currency string
	ledger   *CashLedger
}

// NewSingleCurrencyCash creates the simplified single-currency accumulator.
func NewSingleCurrencyCash(currency string) *SingleCurrencyCash {
	return &SingleCurrencyCash{currency: currency, ledger: NewCashLedger(currency)}
}

// Apply accumulates the record's cash effect when it resolves to this
// ledger's currency; any other currency is ignored.
func (s *SingleCurrencyCash) Apply(r Record, asset Asset, ok bool) {
	currency, amount, has := s.ledger.cashEffect(r, asset, ok)
	if !has || currency != s.currency {
		return
	}
	s.ledger.balances[currency] = s.ledger.balances[currency].Add(amount)
}

// Balance returns the accumulated balance.
func (s *SingleCurrencyCash) Balance() Money { return s.ledger.Balance(s.currency) }
