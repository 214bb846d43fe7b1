// Package folio derives multi-currency portfolio views from an append-only
// ledger of financial events.
//
// Positions, cost basis, realized profit-and-loss and per-currency cash
// balances are never stored: every view is a deterministic replay of the
// ordered event log up to a chosen as-of date. The package is a pure
// computation library; importing records, pricing the holdings and
// rendering the result belong to its callers.
package folio
