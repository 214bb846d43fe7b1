package folio

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "canonical", in: "2025-07-01", want: NewDate(2025, time.July, 1)},
		{name: "permissive single digits", in: "2025-7-1", want: NewDate(2025, time.July, 1)},
		{name: "datetime truncated to day", in: "2025-07-01T15:04:05Z", want: NewDate(2025, time.July, 1)},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2025, time.March, 10)
	b := NewDate(2025, time.March, 11)
	if !a.Before(b) {
		t.Errorf("%v should be before %v", a, b)
	}
	if !b.After(a) {
		t.Errorf("%v should be after %v", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%v should compare equal to itself", a)
	}
}

func TestDate_AddNormalizes(t *testing.T) {
	d := NewDate(2025, time.January, 31).Add(1)
	if want := NewDate(2025, time.February, 1); d != want {
		t.Errorf("Add(1) = %v, want %v", d, want)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.December, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `"2025-12-09"` {
		t.Errorf("Marshal() = %s, want %q", data, `"2025-12-09"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDate_ZeroIsMissing(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if NewDate(2025, time.January, 1).IsZero() {
		t.Error("a real date should not report IsZero")
	}
}
