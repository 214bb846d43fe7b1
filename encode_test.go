package folio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLedgerRoundTrip(t *testing.T) {
	buy := NewBuy("b1", "main", "aapl", NewDate(2025, time.March, 11), Q(10), M(1500.50, "USD"))
	buy.RecordedAt = time.Date(2025, time.March, 11, 9, 30, 0, 0, time.UTC)
	buy.Fee = decimal.NewFromFloat(1.25)
	buy.Notes = "opening position"

	ledger := NewLedger(
		NewDeposit("d1", "main", "cash-usd", NewDate(2025, time.March, 10), M(10000, "USD")),
		buy,
		NewSplit("x1", "main", "aapl", NewDate(2025, time.March, 12), decimal.NewFromInt(2)),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}
	back, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}

	want := ledger.Records()
	got := back.Records()
	if len(got) != len(want) {
		t.Fatalf("round trip returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("record %d round trip = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// A row with an unparseable date must survive decoding with a zero date, so
// it can be surfaced in reports rather than silently vanish.
func TestDecodeLedger_MalformedDateKeepsRecord(t *testing.T) {
	input := `{"kind":"buy","id":"b1","asset":"aapl","occurredOn":"not-a-date","quantity":10}` + "\n"
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if ledger.Len() != 1 {
		t.Fatalf("ledger has %d records, want 1", ledger.Len())
	}
	r := ledger.Records()[0]
	if !r.OccurredOn.IsZero() {
		t.Errorf("OccurredOn = %v, want zero for a malformed date", r.OccurredOn)
	}
	if r.ID != "b1" || !r.Quantity.Equal(Q(10)) {
		t.Errorf("record fields lost: %+v", r)
	}
}

func TestDecodeLedger_SkipsBlankLines(t *testing.T) {
	input := "\n" + `{"kind":"deposit","id":"d1","cashAmount":100,"cashCurrency":"USD"}` + "\n\n"
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if ledger.Len() != 1 {
		t.Errorf("ledger has %d records, want 1", ledger.Len())
	}
}

func TestDecodeLedger_RejectsBrokenJSON(t *testing.T) {
	input := `{"kind":"deposit",` + "\n"
	if _, err := DecodeLedger(strings.NewReader(input)); err == nil {
		t.Error("DecodeLedger() should fail on malformed JSON")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	registry := NewRegistry(
		NewAsset("aapl", "AAPL", "USD", "Apple Inc."),
		NewAsset("cash-usd", "CASH.USD", "USD", "US Dollar"),
	)

	var buf bytes.Buffer
	if err := EncodeRegistry(&buf, registry); err != nil {
		t.Fatalf("EncodeRegistry() failed: %v", err)
	}
	back, err := DecodeRegistry(&buf)
	if err != nil {
		t.Fatalf("DecodeRegistry() failed: %v", err)
	}
	if len(back) != len(registry) {
		t.Fatalf("round trip returned %d assets, want %d", len(back), len(registry))
	}
	for id, asset := range registry {
		if got, ok := back.Lookup(id); !ok || got != asset {
			t.Errorf("asset %q round trip = %+v, want %+v", id, got, asset)
		}
	}
}

func TestEncodeRecord_StableFieldOrder(t *testing.T) {
	rec := NewBuy("b1", "main", "aapl", NewDate(2025, time.March, 11), Q(10), M(1500, "USD"))
	var buf bytes.Buffer
	if err := EncodeRecord(&buf, rec); err != nil {
		t.Fatalf("EncodeRecord() failed: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{"kind":"buy","id":"b1","portfolio":"main","asset":"aapl","occurredOn":"2025-03-11","quantity":10,"settlementAmount":1500,"settlementCurrency":"USD"}`
	if got != want {
		t.Errorf("EncodeRecord() = %s\nwant %s", got, want)
	}
}
