package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/folioz/folio"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recordFlags is the component shared by every record-appending subcommand.
type recordFlags struct {
	date      string
	portfolio string
	asset     string
	notes     string
}

func (c *recordFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "date the event occurred on")
	f.StringVar(&c.portfolio, "p", "", "portfolio id")
	f.StringVar(&c.asset, "a", "", "asset id")
	f.StringVar(&c.notes, "notes", "", "free-text note attached to the record")
}

// base builds the common part of a new record, minting a fresh id. The asset
// reference stays optional here: a deposit or withdrawal may carry none.
func (c *recordFlags) base(kind folio.Kind) (folio.Record, error) {
	on, err := folio.ParseDate(c.date)
	if err != nil {
		return folio.Record{}, fmt.Errorf("invalid date: %w", err)
	}
	return folio.Record{
		ID:          uuid.NewString(),
		PortfolioID: c.portfolio,
		AssetID:     c.asset,
		Kind:        kind,
		OccurredOn:  on,
		RecordedAt:  time.Now().UTC(),
		Notes:       c.notes,
	}, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}

// --- buy ---

type buyCmd struct {
	recordFlags
	quantity float64
	amount   float64
	currency string
	fee      float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of an asset" }
func (*buyCmd) Usage() string {
	return `folio buy -a <asset> -q <quantity> -amount <total> [-c <currency>] [-fee <fee>]

  Appends a buy record. The amount is the settlement value in the asset's
  currency; quantity and fee are magnitudes.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.quantity, "q", 0, "number of units bought")
	f.Float64Var(&c.amount, "amount", 0, "total settlement amount in the asset currency")
	f.StringVar(&c.currency, "c", "", "settlement currency, the asset currency when empty")
	f.Float64Var(&c.fee, "fee", 0, "fee paid, as a magnitude")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.base(folio.KindBuy)
	if err != nil {
		return fail(err)
	}
	if rec.AssetID == "" {
		return fail(fmt.Errorf("asset id is required"))
	}
	if c.quantity <= 0 {
		return fail(fmt.Errorf("buy quantity must be positive, got %v", c.quantity))
	}
	rec.Quantity = folio.Q(c.quantity)
	rec.Settlement = folio.M(c.amount, c.currency)
	rec.Fee = decimal.NewFromFloat(c.fee)
	return AppendRecord(rec)
}

// --- sell ---

type sellCmd struct {
	recordFlags
	quantity float64
	amount   float64
	currency string
	fee      float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of an asset" }
func (*sellCmd) Usage() string {
	return `folio sell -a <asset> -q <quantity> -amount <proceeds> [-c <currency>] [-fee <fee>]

  Appends a sell record. The amount is the cash proceeds of the sale.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.quantity, "q", 0, "number of units sold")
	f.Float64Var(&c.amount, "amount", 0, "cash proceeds of the sale")
	f.StringVar(&c.currency, "c", "", "proceeds currency, the asset currency when empty")
	f.Float64Var(&c.fee, "fee", 0, "fee paid, as a magnitude")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.base(folio.KindSell)
	if err != nil {
		return fail(err)
	}
	if rec.AssetID == "" {
		return fail(fmt.Errorf("asset id is required"))
	}
	if c.quantity <= 0 {
		return fail(fmt.Errorf("sell quantity must be positive, got %v", c.quantity))
	}
	rec.Quantity = folio.Q(c.quantity)
	rec.Cash = folio.M(c.amount, c.currency)
	rec.Fee = decimal.NewFromFloat(c.fee)
	return AppendRecord(rec)
}

// --- deposit / withdraw ---

type depositCmd struct {
	recordFlags
	amount   float64
	currency string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit" }
func (*depositCmd) Usage() string {
	return `folio deposit -a <cash-asset> -amount <amount> -c <currency>

  Appends a deposit record against a cash placeholder asset.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "amount", 0, "amount deposited")
	f.StringVar(&c.currency, "c", "", "currency of the deposit")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.base(folio.KindDeposit)
	if err != nil {
		return fail(err)
	}
	if c.amount <= 0 {
		return fail(fmt.Errorf("deposit amount must be positive, got %v", c.amount))
	}
	rec.Cash = folio.M(c.amount, c.currency)
	return AppendRecord(rec)
}

type withdrawCmd struct {
	recordFlags
	amount   float64
	currency string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal" }
func (*withdrawCmd) Usage() string {
	return `folio withdraw -a <cash-asset> -amount <amount> -c <currency>

  Appends a withdrawal record against a cash placeholder asset.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "amount", 0, "amount withdrawn")
	f.StringVar(&c.currency, "c", "", "currency of the withdrawal")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.base(folio.KindWithdrawal)
	if err != nil {
		return fail(err)
	}
	if c.amount <= 0 {
		return fail(fmt.Errorf("withdrawal amount must be positive, got %v", c.amount))
	}
	rec.Cash = folio.M(c.amount, c.currency)
	return AppendRecord(rec)
}

// --- dividend ---

type dividendCmd struct {
	recordFlags
	amount   float64
	currency string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `folio dividend -a <asset> -amount <amount> [-c <currency>]

  Appends a dividend record. The amount is the total cash received.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.amount, "amount", 0, "total dividend received")
	f.StringVar(&c.currency, "c", "", "currency of the payment")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.base(folio.KindDividend)
	if err != nil {
		return fail(err)
	}
	if rec.AssetID == "" {
		return fail(fmt.Errorf("asset id is required"))
	}
	if c.amount <= 0 {
		return fail(fmt.Errorf("dividend amount must be positive, got %v", c.amount))
	}
	rec.Cash = folio.M(c.amount, c.currency)
	return AppendRecord(rec)
}

// --- split ---

type splitCmd struct {
	recordFlags
	ratio float64
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "record a share split" }
func (*splitCmd) Usage() string {
	return `folio split -a <asset> -r <ratio>

  Appends a split record multiplying the position by the ratio
  (2 for a 2-for-1 split, 0.1 for a 1-for-10 reverse split).
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.ratio, "r", 0, "split ratio applied to units")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.base(folio.KindSplit)
	if err != nil {
		return fail(err)
	}
	if rec.AssetID == "" {
		return fail(fmt.Errorf("asset id is required"))
	}
	if c.ratio <= 0 {
		return fail(fmt.Errorf("split ratio must be positive, got %v", c.ratio))
	}
	rec.SplitRatio = decimal.NewFromFloat(c.ratio)
	return AppendRecord(rec)
}
