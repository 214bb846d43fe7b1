package folio

import (
	"encoding/json"
	"strings"
)

// CashTickerPrefix marks placeholder assets that represent a unit of currency
// itself rather than a tradable instrument. Such assets participate in the
// cash ledger but never in position tracking.
const CashTickerPrefix = "CASH."

// Asset is the reference data for one instrument traded in a portfolio.
type Asset struct {
	ID       string
	Ticker   string
	Currency string
	Name     string
	Status   string
}

// NewAsset creates an Asset.
func NewAsset(id, ticker, currency, name string) Asset {
	return Asset{ID: id, Ticker: ticker, Currency: currency, Name: name}
}

// IsCash reports whether this asset is a cash placeholder.
func (a Asset) IsCash() bool { return strings.HasPrefix(a.Ticker, CashTickerPrefix) }

// CashCurrency returns the currency a cash placeholder stands for, preferring
// the ticker suffix over the declared currency.
func (a Asset) CashCurrency() string {
	if c := strings.TrimPrefix(a.Ticker, CashTickerPrefix); c != a.Ticker && c != "" {
		return c
	}
	return a.Currency
}

func (a Asset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("ticker", a.Ticker)
	w.Append("currency", a.Currency)
	w.Optional("name", a.Name)
	w.Optional("status", a.Status)
	return w.MarshalJSON()
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string `json:"id"`
		Ticker   string `json:"ticker"`
		Currency string `json:"currency"`
		Name     string `json:"name"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*a = Asset{ID: temp.ID, Ticker: temp.Ticker, Currency: temp.Currency, Name: temp.Name, Status: temp.Status}
	return nil
}

// Registry maps asset ids to their reference data. The replay engine consumes
// it read-only; a record referencing an id absent from the registry is
// excluded from replay and surfaced as a warning.
type Registry map[string]Asset

// NewRegistry builds a registry from assets, indexed by id.
func NewRegistry(assets ...Asset) Registry {
	r := make(Registry, len(assets))
	for _, a := range assets {
		r[a.ID] = a
	}
	return r
}

// Lookup returns the asset declared with this id.
func (r Registry) Lookup(id string) (Asset, bool) {
	a, ok := r[id]
	return a, ok
}

// Add indexes an asset by its id.
func (r Registry) Add(a Asset) { r[a.ID] = a }
