// Package renderer renders derived portfolio views as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/folioz/folio"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the holdings of a view as a markdown table.
func HoldingsMarkdown(v *folio.View) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Holdings", v))

	if len(v.Holdings) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Units", "Cost Basis", "Avg Unit Cost", "Realized Gain"},
	}
	for _, h := range v.Holdings {
		table.Rows = append(table.Rows, []string{
			h.Ticker,
			h.Units.String(),
			h.CostBasis.String(),
			h.AvgUnitCost.String(),
			h.RealizedGain.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// CashMarkdown renders the cash balances of a view as a markdown table.
func CashMarkdown(v *folio.View) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Cash", v))

	if len(v.Cash) == 0 {
		doc.PlainText("No cash balances.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", "Balance"},
	}
	for _, b := range v.Cash {
		table.Rows = append(table.Rows, []string{b.Currency, b.Money().SignedString()})
	}
	doc.Table(table)

	return doc.String()
}

// WarningsMarkdown renders the data-quality warnings a replay raised.
func WarningsMarkdown(v *folio.View) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Data Quality", v))

	if len(v.Warnings) == 0 {
		doc.PlainText("No issues found.")
		return doc.String()
	}

	var items []string
	for _, w := range v.Warnings {
		items = append(items, w.String())
	}
	doc.BulletList(items...)

	return doc.String()
}

func title(base string, v *folio.View) string {
	if v.Portfolio != "" {
		base = fmt.Sprintf("%s for %s", base, v.Portfolio)
	}
	if !v.AsOf.IsZero() {
		base = fmt.Sprintf("%s (as of %s)", base, v.AsOf)
	}
	return base
}
