package cmd

import (
	"context"
	"flag"

	"github.com/folioz/folio/renderer"
	"github.com/google/subcommands"
)

// cashCmd holds the flags for the 'cash' subcommand.
type cashCmd struct {
	date      string
	portfolio string
	strict    bool
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "display per-currency cash balances for a specific date" }
func (*cashCmd) Usage() string {
	return `folio cash [-d <date>] [-p <portfolio>]

  Replays the ledger and displays the signed cash balance of every currency
  touched on or before a given date.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "as-of date for the report, latest when empty")
	f.StringVar(&c.portfolio, "p", "", "portfolio to report on, all portfolios when empty")
	f.BoolVar(&c.strict, "cash-asset", false, "require a cash placeholder asset for deposit/withdrawal/fee cash effects")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := buildView(c.date, c.portfolio, c.strict)
	if view == nil {
		return status
	}
	printMarkdown(renderer.CashMarkdown(view))
	return subcommands.ExitSuccess
}

// issuesCmd surfaces the data-quality warnings of a replay.
type issuesCmd struct {
	date      string
	portfolio string
	strict    bool
}

func (*issuesCmd) Name() string     { return "issues" }
func (*issuesCmd) Synopsis() string { return "list records applied with a defensive fallback" }
func (*issuesCmd) Usage() string {
	return `folio issues [-d <date>] [-p <portfolio>]

  Replays the ledger and lists every record that needed a defensive fallback:
  unknown assets, bad split ratios, unresolvable amounts, negative-position
  clamps and mixed realized currencies.
`
}

func (c *issuesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "as-of date for the report, latest when empty")
	f.StringVar(&c.portfolio, "p", "", "portfolio to report on, all portfolios when empty")
	f.BoolVar(&c.strict, "cash-asset", false, "require a cash placeholder asset for deposit/withdrawal/fee cash effects")
}

func (c *issuesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := buildView(c.date, c.portfolio, c.strict)
	if view == nil {
		return status
	}
	printMarkdown(renderer.WarningsMarkdown(view))
	return subcommands.ExitSuccess
}
