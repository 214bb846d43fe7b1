package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/folioz/folio"
	"github.com/folioz/folio/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date      string
	portfolio string
	strict    bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display derived holdings for a specific date" }
func (*holdingsCmd) Usage() string {
	return `folio holdings [-d <date>] [-p <portfolio>]

  Replays the ledger and displays units, cost basis and realized figures per
  asset on a given date.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "as-of date for the report, latest when empty")
	f.StringVar(&c.portfolio, "p", "", "portfolio to report on, all portfolios when empty")
	f.BoolVar(&c.strict, "cash-asset", false, "require a cash placeholder asset for deposit/withdrawal/fee cash effects")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := buildView(c.date, c.portfolio, c.strict)
	if view == nil {
		return status
	}
	printMarkdown(renderer.HoldingsMarkdown(view))
	return subcommands.ExitSuccess
}

// buildView is the shared load-filter-replay path of the reporting commands.
func buildView(date, portfolio string, strict bool) (*folio.View, subcommands.ExitStatus) {
	var opts []folio.Option
	if date != "" {
		on, err := folio.ParseDate(date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return nil, subcommands.ExitUsageError
		}
		opts = append(opts, folio.WithAsOf(on))
	}
	if portfolio != "" {
		opts = append(opts, folio.WithPortfolio(portfolio))
	}
	if strict {
		opts = append(opts, folio.WithRequireCashAsset(true))
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	registry, err := DecodeRegistryFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	view, err := folio.BuildView(ledger.Records(), registry, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building view: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return view, subcommands.ExitSuccess
}
