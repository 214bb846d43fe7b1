package folio

import "testing"

func TestParseKind(t *testing.T) {
	for kind, name := range kindNames {
		if got := ParseKind(name); got != kind {
			t.Errorf("ParseKind(%q) = %v, want %v", name, got, kind)
		}
	}
	if got := ParseKind("short-straddle"); got != KindUnknown {
		t.Errorf("ParseKind of an unknown name = %v, want KindUnknown", got)
	}
}

func TestKind_String(t *testing.T) {
	if got := KindAdjustBalance.String(); got != "balance-adjustment" {
		t.Errorf("KindAdjustBalance.String() = %q, want %q", got, "balance-adjustment")
	}
	if got := Kind(999).String(); got != "unknown" {
		t.Errorf("Kind(999).String() = %q, want %q", got, "unknown")
	}
}

// Within a day, inbound kinds must apply before outbound kinds so a same-day
// round trip never trips the negative-position clamp.
func TestKind_ReplayPriority(t *testing.T) {
	order := []Kind{
		KindSplit, KindTransferIn, KindBuy, KindSell, KindTransferOut,
		KindDividend, KindInterest, KindFee, KindDeposit, KindWithdrawal,
		KindOther, KindAdjustBalance,
	}
	for i := 1; i < len(order); i++ {
		prev, next := order[i-1], order[i]
		if prev.replayPriority() >= next.replayPriority() {
			t.Errorf("%v (priority %d) should order before %v (priority %d)",
				prev, prev.replayPriority(), next, next.replayPriority())
		}
	}
	if KindUnknown.replayPriority() <= KindAdjustBalance.replayPriority() {
		t.Error("unknown kinds should order after every known kind")
	}
}

func TestKind_Realizes(t *testing.T) {
	for _, k := range []Kind{KindSell, KindDividend, KindInterest, KindFee} {
		if !k.realizes() {
			t.Errorf("%v should realize gain or loss", k)
		}
	}
	// an in-kind transfer-out moves units without crystallizing anything.
	if KindTransferOut.realizes() {
		t.Error("transfer-out must not realize")
	}
}

func TestKind_TouchesHolding(t *testing.T) {
	touching := []Kind{KindSplit, KindTransferIn, KindBuy, KindSell, KindTransferOut, KindDividend, KindInterest, KindFee}
	for _, k := range touching {
		if !k.touchesHolding() {
			t.Errorf("%v should touch holdings", k)
		}
	}
	for _, k := range []Kind{KindDeposit, KindWithdrawal, KindOther, KindAdjustBalance, KindUnknown} {
		if k.touchesHolding() {
			t.Errorf("%v should not touch holdings", k)
		}
	}
}
