package folio

import (
	"sort"
	"time"
)

// The replay order is a total, deterministic 4-key order over records:
// occurred-on, recorded-at, kind priority, id. Missing dates and timestamps
// sort last so that undated legacy rows are applied after everything they
// could depend on, instead of being dropped.
//
// The display order is coarser (no kind priority): cash accumulation is
// commutative within a day, and ledger listings read better in raw
// chronological order.

// compareDates orders dates ascending with the zero (missing) date last.
func compareDates(a, b Date) int {
	switch {
	case a == b:
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case a.Before(b):
		return -1
	default:
		return 1
	}
}

// compareTimes orders timestamps ascending with the zero (missing) value last.
func compareTimes(a, b time.Time) int {
	switch {
	case a.Equal(b):
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case a.Before(b):
		return -1
	default:
		return 1
	}
}

// replayLess is the strict 4-key order used for position replay.
func replayLess(a, b Record) bool {
	if c := compareDates(a.OccurredOn, b.OccurredOn); c != 0 {
		return c < 0
	}
	if c := compareTimes(a.RecordedAt, b.RecordedAt); c != 0 {
		return c < 0
	}
	if pa, pb := a.Kind.replayPriority(), b.Kind.replayPriority(); pa != pb {
		return pa < pb
	}
	return a.ID < b.ID
}

// displayLess is the coarse 3-key order used for the cash ledger and listings.
func displayLess(a, b Record) bool {
	if c := compareDates(a.OccurredOn, b.OccurredOn); c != 0 {
		return c < 0
	}
	if c := compareTimes(a.RecordedAt, b.RecordedAt); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// SortForReplay sorts records in place into the strict replay order.
func SortForReplay(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return replayLess(records[i], records[j]) })
}

// SortForDisplay sorts records in place into the coarse display order.
func SortForDisplay(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return displayLess(records[i], records[j]) })
}

// FilterAsOf returns the records whose occurred-on date is on or before the
// cutoff. Records with a missing occurred-on are always retained: a malformed
// date must never silently remove a row from a report. A zero cutoff keeps
// everything.
func FilterAsOf(records []Record, asOf Date) []Record {
	if asOf.IsZero() {
		return records
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.OccurredOn.IsZero() || !r.OccurredOn.After(asOf) {
			kept = append(kept, r)
		}
	}
	return kept
}
