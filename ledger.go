package folio

import (
	"iter"
	"sort"
)

// Ledger is an append-only collection of ledger records kept in display
// order. It is the unit the codec reads and writes; the replay engine itself
// only needs the record slice.
type Ledger struct {
	records []Record
}

// NewLedger creates an empty ledger.
func NewLedger(records ...Record) *Ledger {
	l := &Ledger{}
	l.Append(records...)
	return l
}

// Append appends records and restores the display order. Appending never
// mutates existing records: the log is append-only.
func (l *Ledger) Append(records ...Record) {
	l.records = append(l.records, records...)
	SortForDisplay(l.records)
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns a snapshot copy of the records in display order. The copy
// keeps the ledger immutable under concurrent replays.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// All returns an iterator over records matching every given filter.
func (l *Ledger) All(filters ...func(Record) bool) iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range l.records {
			accept := true
			for _, filter := range filters {
				if !filter(r) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// ByPortfolio returns a predicate that filters records by portfolio id.
func ByPortfolio(id string) func(Record) bool {
	return func(r Record) bool { return r.PortfolioID == id }
}

// ByAsset returns a predicate that filters records by asset id.
func ByAsset(id string) func(Record) bool {
	return func(r Record) bool { return r.AssetID == id }
}

// ByKind returns a predicate that filters records by kind.
func ByKind(k Kind) func(Record) bool {
	return func(r Record) bool { return r.Kind == k }
}

// OldestDate returns the occurred-on date of the earliest dated record.
func (l *Ledger) OldestDate() Date {
	for _, r := range l.records {
		if !r.OccurredOn.IsZero() {
			return r.OccurredOn
		}
	}
	return Date{}
}

// NewestDate returns the occurred-on date of the latest dated record.
func (l *Ledger) NewestDate() Date {
	for i := len(l.records) - 1; i >= 0; i-- {
		if !l.records[i].OccurredOn.IsZero() {
			return l.records[i].OccurredOn
		}
	}
	return Date{}
}

// Currencies returns the sorted list of settlement and cash currencies that
// appear in the ledger.
func (l *Ledger) Currencies() []string {
	seen := make(map[string]struct{})
	for _, r := range l.records {
		if c := r.Settlement.Currency(); c != "" {
			seen[c] = struct{}{}
		}
		if c := r.Cash.Currency(); c != "" {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Portfolios returns the sorted list of portfolio ids that appear in the ledger.
func (l *Ledger) Portfolios() []string {
	seen := make(map[string]struct{})
	for _, r := range l.records {
		if r.PortfolioID != "" {
			seen[r.PortfolioID] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
