package folio

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one immutable ledger event: the atomic unit of truth from which
// every position, cost basis and cash balance is derived.
//
// Quantity, UnitPrice and Fee are sign-free magnitudes; direction comes from
// Kind. Settlement carries the value of the event in the asset's currency,
// Cash the value in the portfolio's cash currency when a cash leg exists.
type Record struct {
	ID          string
	PortfolioID string
	AssetID     string
	Kind        Kind
	OccurredOn  Date      // calendar date; zero when missing
	RecordedAt  time.Time // creation timestamp; zero when missing
	Quantity    Quantity
	UnitPrice   decimal.Decimal
	Fee         decimal.Decimal
	Settlement  Money // value of the event in the asset's currency
	Cash        Money // value of the event in the portfolio's cash currency
	SplitRatio  decimal.Decimal
	Notes       string // free text, ignored by the engine
}

// NewBuy creates a buy record for quantity units settled for amount.
func NewBuy(id, portfolio, asset string, on Date, quantity Quantity, settlement Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindBuy,
		OccurredOn: on, Quantity: quantity, Settlement: settlement}
}

// NewSell creates a sell record for quantity units with a cash leg of proceeds.
func NewSell(id, portfolio, asset string, on Date, quantity Quantity, proceeds Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindSell,
		OccurredOn: on, Quantity: quantity, Cash: proceeds}
}

// NewDividend creates a dividend record with a cash leg.
func NewDividend(id, portfolio, asset string, on Date, amount Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindDividend,
		OccurredOn: on, Cash: amount}
}

// NewInterest creates an interest record with a cash leg.
func NewInterest(id, portfolio, asset string, on Date, amount Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindInterest,
		OccurredOn: on, Cash: amount}
}

// NewDeposit creates a cash deposit record.
func NewDeposit(id, portfolio, asset string, on Date, amount Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindDeposit,
		OccurredOn: on, Cash: amount}
}

// NewWithdrawal creates a cash withdrawal record.
func NewWithdrawal(id, portfolio, asset string, on Date, amount Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindWithdrawal,
		OccurredOn: on, Cash: amount}
}

// NewSplit creates a split record multiplying units by ratio.
func NewSplit(id, portfolio, asset string, on Date, ratio decimal.Decimal) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindSplit,
		OccurredOn: on, SplitRatio: ratio}
}

// NewTransferIn creates an in-kind inbound transfer record.
func NewTransferIn(id, portfolio, asset string, on Date, quantity Quantity, cost Money) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindTransferIn,
		OccurredOn: on, Quantity: quantity, Settlement: cost}
}

// NewTransferOut creates an in-kind outbound transfer record.
func NewTransferOut(id, portfolio, asset string, on Date, quantity Quantity) Record {
	return Record{ID: id, PortfolioID: portfolio, AssetID: asset, Kind: KindTransferOut,
		OccurredOn: on, Quantity: quantity}
}

// MarshalJSON implements the json.Marshaler interface for Record, with a
// stable field order and zero-valued fields omitted.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", r.Kind)
	w.Append("id", r.ID)
	w.Optional("portfolio", r.PortfolioID)
	w.Optional("asset", r.AssetID)
	if !r.OccurredOn.IsZero() {
		w.Append("occurredOn", r.OccurredOn)
	}
	if !r.RecordedAt.IsZero() {
		w.Append("recordedAt", r.RecordedAt.UTC().Format(time.RFC3339))
	}
	if !r.Quantity.IsZero() {
		w.Append("quantity", r.Quantity)
	}
	if !r.UnitPrice.IsZero() {
		w.Append("unitPrice", r.UnitPrice)
	}
	if !r.Fee.IsZero() {
		w.Append("fee", r.Fee)
	}
	if !r.Settlement.IsZero() || r.Settlement.Currency() != "" {
		w.Append("settlementAmount", r.Settlement.Decimal())
		w.Optional("settlementCurrency", r.Settlement.Currency())
	}
	if !r.Cash.IsZero() || r.Cash.Currency() != "" {
		w.Append("cashAmount", r.Cash.Decimal())
		w.Optional("cashCurrency", r.Cash.Currency())
	}
	if !r.SplitRatio.IsZero() {
		w.Append("splitRatio", r.SplitRatio)
	}
	w.Optional("notes", r.Notes)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Record.
// Malformed dates do not fail the record: a row with an unparseable
// occurred-on keeps a zero date and must never silently vanish from a report.
func (r *Record) UnmarshalJSON(data []byte) error {
	var temp struct {
		Kind               Kind            `json:"kind"`
		ID                 string          `json:"id"`
		Portfolio          string          `json:"portfolio"`
		Asset              string          `json:"asset"`
		OccurredOn         string          `json:"occurredOn"`
		RecordedAt         string          `json:"recordedAt"`
		Quantity           Quantity        `json:"quantity"`
		UnitPrice          decimal.Decimal `json:"unitPrice"`
		Fee                decimal.Decimal `json:"fee"`
		SettlementAmount   decimal.Decimal `json:"settlementAmount"`
		SettlementCurrency string          `json:"settlementCurrency"`
		CashAmount         decimal.Decimal `json:"cashAmount"`
		CashCurrency       string          `json:"cashCurrency"`
		SplitRatio         decimal.Decimal `json:"splitRatio"`
		Notes              string          `json:"notes"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	*r = Record{
		ID:          temp.ID,
		PortfolioID: temp.Portfolio,
		AssetID:     temp.Asset,
		Kind:        temp.Kind,
		Quantity:    temp.Quantity,
		UnitPrice:   temp.UnitPrice,
		Fee:         temp.Fee,
		SplitRatio:  temp.SplitRatio,
		Notes:       temp.Notes,
	}
	if !temp.SettlementAmount.IsZero() || temp.SettlementCurrency != "" {
		r.Settlement = M(temp.SettlementAmount, temp.SettlementCurrency)
	}
	if !temp.CashAmount.IsZero() || temp.CashCurrency != "" {
		r.Cash = M(temp.CashAmount, temp.CashCurrency)
	}
	if temp.OccurredOn != "" {
		if on, err := ParseDate(temp.OccurredOn); err == nil {
			r.OccurredOn = on
		}
	}
	if temp.RecordedAt != "" {
		if at, err := time.Parse(time.RFC3339, temp.RecordedAt); err == nil {
			r.RecordedAt = at
		}
	}
	return nil
}

func (r Record) Equal(o Record) bool {
	return r.ID == o.ID && r.PortfolioID == o.PortfolioID && r.AssetID == o.AssetID &&
		r.Kind == o.Kind && r.OccurredOn == o.OccurredOn && r.RecordedAt.Equal(o.RecordedAt) &&
		r.Quantity.Equal(o.Quantity) && r.UnitPrice.Equal(o.UnitPrice) && r.Fee.Equal(o.Fee) &&
		r.Settlement.Equal(o.Settlement) && r.Cash.Equal(o.Cash) &&
		r.SplitRatio.Equal(o.SplitRatio) && r.Notes == o.Notes
}
