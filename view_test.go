package folio

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// setupLedger builds the reference data and record stream most view tests
// replay: a funded portfolio trading one US stock.
func setupLedger(t *testing.T) ([]Record, Registry) {
	t.Helper()
	registry := NewRegistry(aapl, cashUSD)

	buy := NewBuy("b1", "main", "aapl", NewDate(2025, time.March, 11), Q(10), M(1500, "USD"))
	buy.Cash = M(1500, "USD")
	sell := NewSell("s1", "main", "aapl", NewDate(2025, time.March, 12), Q(5), M(1200, "USD"))

	records := []Record{
		NewDeposit("d1", "main", "cash-usd", NewDate(2025, time.March, 10), M(10000, "USD")),
		buy,
		sell,
	}
	return records, registry
}

func TestBuildView(t *testing.T) {
	records, registry := setupLedger(t)
	view, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if len(view.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", view.Warnings)
	}

	h := view.Holding("AAPL")
	if h == nil {
		t.Fatal("view has no AAPL holding")
	}
	if !h.Units.Equal(Q(5)) {
		t.Errorf("Units = %v, want 5", h.Units)
	}
	if !h.CostBasis.Equal(M(750, "USD")) {
		t.Errorf("CostBasis = %v, want USD 750", h.CostBasis)
	}
	if !h.RealizedGain.Equal(M(450, "USD")) {
		t.Errorf("RealizedGain = %v, want USD 450", h.RealizedGain)
	}
	if got := view.CashBalance("USD"); !got.Equal(M(9700, "USD")) {
		t.Errorf("CashBalance(USD) = %v, want 9700", got)
	}
}

// The same inputs must reconstruct bit-identical state, no matter how often
// or how concurrently the view is built.
func TestBuildView_Deterministic(t *testing.T) {
	records, registry := setupLedger(t)
	first, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	second, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two builds over the same inputs differ:\n%+v\n%+v", first, second)
	}
}

// Shuffling the input order must not change the result: replay imposes its
// own total order.
func TestBuildView_InputOrderIrrelevant(t *testing.T) {
	records, registry := setupLedger(t)
	reversed := make([]Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	straight, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	shuffled, err := BuildView(reversed, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if !reflect.DeepEqual(straight, shuffled) {
		t.Errorf("input order changed the view:\n%+v\n%+v", straight, shuffled)
	}
}

func TestBuildView_AsOf(t *testing.T) {
	records, registry := setupLedger(t)

	testCases := []struct {
		name      string
		asOf      Date
		wantUnits Quantity
		wantCash  Money
	}{
		{
			name:      "before the sale",
			asOf:      NewDate(2025, time.March, 11),
			wantUnits: Q(10),
			wantCash:  M(8500, "USD"),
		},
		{
			name:      "after everything",
			asOf:      NewDate(2025, time.March, 12),
			wantUnits: Q(5),
			wantCash:  M(9700, "USD"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := BuildView(records, registry, WithAsOf(tc.asOf))
			if err != nil {
				t.Fatalf("BuildView() failed: %v", err)
			}
			h := view.Holding("AAPL")
			if h == nil {
				t.Fatal("view has no AAPL holding")
			}
			if !h.Units.Equal(tc.wantUnits) {
				t.Errorf("Units = %v, want %v", h.Units, tc.wantUnits)
			}
			if got := view.CashBalance("USD"); !got.Equal(tc.wantCash) {
				t.Errorf("CashBalance(USD) = %v, want %v", got, tc.wantCash)
			}
		})
	}
}

func TestBuildView_PortfolioScope(t *testing.T) {
	registry := NewRegistry(aapl, cashUSD)
	records := []Record{
		NewDeposit("d1", "alice", "cash-usd", testDay, M(1000, "USD")),
		NewDeposit("d2", "bob", "cash-usd", testDay, M(2000, "USD")),
	}

	view, err := BuildView(records, registry, WithPortfolio("alice"))
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if got := view.CashBalance("USD"); !got.Equal(M(1000, "USD")) {
		t.Errorf("CashBalance(USD) = %v, want alice's 1000 only", got)
	}

	pooled, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if got := pooled.CashBalance("USD"); !got.Equal(M(3000, "USD")) {
		t.Errorf("pooled CashBalance(USD) = %v, want 3000", got)
	}
}

// A record naming an unknown asset is excluded from both replays and
// surfaced as a warning, never an error.
func TestBuildView_UnknownAsset(t *testing.T) {
	registry := NewRegistry(aapl)
	records := []Record{
		NewBuy("b1", "", "aapl", testDay, Q(10), M(1500, "USD")),
		NewBuy("b2", "", "ghost", testDay, Q(10), M(1500, "USD")),
	}

	view, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if !hasWarning(view.Warnings, WarnUnknownAsset) {
		t.Errorf("warnings = %v, want a %v warning", view.Warnings, WarnUnknownAsset)
	}
	if len(view.Holdings) != 1 {
		t.Errorf("Holdings = %v, want the known asset only", view.Holdings)
	}
}

func TestBuildView_NilRegistry(t *testing.T) {
	if _, err := BuildView(nil, nil); err != ErrNilRegistry {
		t.Errorf("BuildView(nil registry) error = %v, want ErrNilRegistry", err)
	}
}

// A split followed by selling the whole doubled position must realize exactly
// the economic gain: splitting grants no value.
func TestBuildView_SplitNeutrality(t *testing.T) {
	registry := NewRegistry(aapl)
	records := []Record{
		NewBuy("b1", "", "aapl", testDay, Q(10), M(1000, "USD")),
		NewSplit("x1", "", "aapl", testDay.Add(1), decimal.NewFromInt(2)),
		NewSell("s1", "", "aapl", testDay.Add(2), Q(20), M(1000, "USD")),
	}
	view, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	h := view.Holding("AAPL")
	if h == nil {
		t.Fatal("view has no AAPL holding")
	}
	if !h.Units.IsZero() {
		t.Errorf("Units = %v, want 0", h.Units)
	}
	if !h.RealizedGain.IsZero() {
		t.Errorf("RealizedGain = %v, want 0 when sold at cost", h.RealizedGain)
	}
}

// Same-day events replay inbound-first regardless of record ids, so a buy and
// sell booked on one day never trip the clamp.
func TestBuildView_SameDayRoundTrip(t *testing.T) {
	registry := NewRegistry(aapl)
	records := []Record{
		NewSell("a-sell", "", "aapl", testDay, Q(10), M(1100, "USD")),
		NewBuy("z-buy", "", "aapl", testDay, Q(10), M(1000, "USD")),
	}
	view, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if hasWarning(view.Warnings, WarnNegativeClamp) {
		t.Errorf("warnings = %v, the same-day buy must replay before the sell", view.Warnings)
	}
	h := view.Holding("AAPL")
	if h == nil {
		t.Fatal("view has no AAPL holding")
	}
	if !h.RealizedGain.Equal(M(100, "USD")) {
		t.Errorf("RealizedGain = %v, want USD 100", h.RealizedGain)
	}
}

func TestBuildView_DepositWithoutAssetReference(t *testing.T) {
	registry := NewRegistry(aapl)
	records := []Record{
		NewDeposit("d1", "", "", testDay, M(500, "USD")),
	}
	view, err := BuildView(records, registry)
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if got := view.CashBalance("USD"); !got.Equal(M(500, "USD")) {
		t.Errorf("CashBalance(USD) = %v, want 500, an assetless deposit still moves cash", got)
	}

	strict, err := BuildView(records, registry, WithRequireCashAsset(true))
	if err != nil {
		t.Fatalf("BuildView() failed: %v", err)
	}
	if got := strict.CashBalance("USD"); !got.IsZero() {
		t.Errorf("strict CashBalance(USD) = %v, want 0 when cash assets are required", got)
	}
}
