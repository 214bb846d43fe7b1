package folio

import "testing"

func TestMoney_WeakCurrency(t *testing.T) {
	got := M(0, "").Add(M(100, "USD"))
	if got.Currency() != "USD" {
		t.Errorf("adding to an untagged zero should adopt the currency, got %q", got.Currency())
	}
	got = M(100, "USD").Sub(Money{})
	if !got.Equal(M(100, "USD")) {
		t.Errorf("subtracting an untagged zero = %v, want USD 100", got)
	}
}

func TestMoney_AddPanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding USD to EUR should panic")
		}
	}()
	M(1, "USD").Add(M(1, "EUR"))
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		name string
		in   Money
		want string
	}{
		{name: "usd", in: M(1500.5, "USD"), want: "$1,500.50"},
		{name: "negative usd", in: M(-3.21, "USD"), want: "-$3.21"},
		{name: "eur", in: M(20, "EUR"), want: "€20.00"},
		{name: "yen has no minor unit", in: M(1200, "JPY"), want: "¥1,200"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := M(0, "USD").SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want %q", got, "-")
	}
	if got := M(5, "USD").SignedString(); got != "+$5.00" {
		t.Errorf("SignedString(5) = %q, want %q", got, "+$5.00")
	}
}
