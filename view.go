package folio

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// View is a point-in-time reconstruction of one portfolio (or of all
// portfolios pooled together): the holdings list, the per-currency cash
// balances, and the data-quality warnings the replay raised. It is built
// fresh on every request and never persisted.
type View struct {
	AsOf      Date
	Portfolio string // empty for the aggregate of all portfolios
	Holdings  []Holding
	Cash      []CashBalance
	Warnings  []Warning
}

// Holding returns the holding for a ticker, or nil if the view has none.
func (v *View) Holding(ticker string) *Holding {
	for i := range v.Holdings {
		if v.Holdings[i].Ticker == ticker {
			return &v.Holdings[i]
		}
	}
	return nil
}

// CashBalance returns the balance for a currency, zero if absent.
func (v *View) CashBalance(currency string) Money {
	for _, b := range v.Cash {
		if b.Currency == currency {
			return b.Money()
		}
	}
	return M(0, currency)
}

// ErrNilRegistry is returned when BuildView is called without reference data.
// A missing registry is a caller configuration error, unlike per-record data
// problems which degrade to warnings.
var ErrNilRegistry = errors.New("asset registry is required")

type viewOptions struct {
	asOf             Date
	portfolio        string
	requireCashAsset bool
	epsilon          decimal.Decimal
	seedCurrencies   []string
}

// Option configures a view build.
type Option func(*viewOptions)

// WithAsOf reconstructs the historical snapshot at the given cutoff date.
// Records dated after the cutoff are excluded; undated records are kept.
func WithAsOf(d Date) Option { return func(o *viewOptions) { o.asOf = d } }

// WithPortfolio restricts the view to one portfolio's records.
func WithPortfolio(id string) Option { return func(o *viewOptions) { o.portfolio = id } }

// WithRequireCashAsset gates deposit, withdrawal and fee cash effects behind
// the record's asset being a cash placeholder.
func WithRequireCashAsset(require bool) Option {
	return func(o *viewOptions) { o.requireCashAsset = require }
}

// WithEpsilon overrides the threshold below which positions and balances are
// treated as zero.
func WithEpsilon(eps decimal.Decimal) Option { return func(o *viewOptions) { o.epsilon = eps } }

// WithSeedCurrencies seeds the cash ledger with the portfolio's known
// operating currencies so they accumulate from an explicit zero.
func WithSeedCurrencies(currencies ...string) Option {
	return func(o *viewOptions) { o.seedCurrencies = append(o.seedCurrencies, currencies...) }
}

// BuildView replays the record stream against the registry and assembles the
// holdings and cash balances as of the configured date.
//
// The function is pure: it allocates its own accumulators, never mutates its
// inputs, and yields bit-identical output for identical input, so concurrent
// callers need no locking. It requires the complete record set: cost-basis
// correctness depends on seeing every prior event for an asset before a
// disposal is realized.
func BuildView(records []Record, registry Registry, opts ...Option) (*View, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	o := viewOptions{epsilon: defaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}

	view := &View{AsOf: o.asOf, Portfolio: o.portfolio}

	scoped := make([]Record, 0, len(records))
	for _, r := range records {
		if o.portfolio != "" && r.PortfolioID != o.portfolio {
			continue
		}
		scoped = append(scoped, r)
	}
	scoped = FilterAsOf(scoped, o.asOf)

	// Join reference data. A record naming an asset the registry does not
	// know is excluded from both replays; a record with no asset reference
	// at all may still carry a pure cash effect.
	joined := make([]Record, 0, len(scoped))
	for _, r := range scoped {
		if _, ok := registry.Lookup(r.AssetID); !ok && r.AssetID != "" {
			view.Warnings = append(view.Warnings, warnf(WarnUnknownAsset, r.ID,
				"asset %q is not in the registry", r.AssetID))
			continue
		}
		joined = append(joined, r)
	}

	// Position replay: strict order, per non-cash asset.
	positional := make([]Record, 0, len(joined))
	for _, r := range joined {
		if !r.Kind.touchesHolding() {
			continue
		}
		asset, ok := registry.Lookup(r.AssetID)
		if !ok || asset.IsCash() {
			continue
		}
		positional = append(positional, r)
	}
	SortForReplay(positional)

	holdings := make(map[string]*Holding)
	for _, r := range positional {
		asset, _ := registry.Lookup(r.AssetID)
		h, ok := holdings[r.AssetID]
		if !ok {
			h = NewHolding(asset)
			h.eps = o.epsilon
			holdings[r.AssetID] = h
		}
		view.Warnings = append(view.Warnings, h.Apply(r, asset)...)
	}

	// Cash replay: coarse order, whole stream.
	cashable := make([]Record, len(joined))
	copy(cashable, joined)
	SortForDisplay(cashable)

	cash := NewCashLedger(o.seedCurrencies...)
	cash.requireCashAsset = o.requireCashAsset
	for _, r := range cashable {
		asset, ok := registry.Lookup(r.AssetID)
		cash.Apply(r, asset, ok)
	}

	for _, h := range holdings {
		view.Holdings = append(view.Holdings, *h)
	}
	sort.Slice(view.Holdings, func(i, j int) bool {
		return view.Holdings[i].Ticker < view.Holdings[j].Ticker
	})
	view.Cash = cash.Balances(o.epsilon)

	return view, nil
}
