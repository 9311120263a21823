package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-08-31", New(2025, time.August, 31), false},
		{"2025-8-1", New(2025, time.August, 1), false},
		{" 2025-08-31 ", New(2025, time.August, 31), false},
		{"31/08/2025", New(2025, time.August, 31), false},
		{"20250831", New(2025, time.August, 31), false},
		{"not a date", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestZeroDate(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Errorf("Date{}.IsZero() = false, want true")
	}
	if d.String() != "" {
		t.Errorf("Date{}.String() = %q, want empty", d.String())
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v", data, err)
	}
	if !back.IsZero() {
		t.Errorf("round trip of zero date = %v, want zero", back)
	}
}

func TestLatest(t *testing.T) {
	a := New(2025, time.July, 31)
	b := New(2025, time.August, 31)
	if got := Latest(Date{}, b, a); got != b {
		t.Errorf("Latest() = %v, want %v", got, b)
	}
	if got := Latest(); !got.IsZero() {
		t.Errorf("Latest() of nothing = %v, want zero", got)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{From: New(2025, 1, 1), To: New(2025, 1, 31)}
	testCases := []struct {
		name string
		r    Range
		d    Date
		want bool
	}{
		{"inside", r, New(2025, 1, 15), true},
		{"lower bound", r, New(2025, 1, 1), true},
		{"upper bound", r, New(2025, 1, 31), true},
		{"after", r, New(2025, 2, 1), false},
		{"zero date in bounded range", r, Date{}, false},
		{"zero date in open range", Range{}, Date{}, true},
		{"half open", Range{From: New(2025, 1, 1)}, New(2030, 1, 1), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Contains(tc.d); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tc.r.Identifier(), tc.d, got, tc.want)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	from, to := New(2025, 1, 1), New(2025, 1, 31)
	for r, want := range map[Range]string{
		{}:                   "all",
		{From: from}:         "2025-01-01..",
		{To: to}:             "..2025-01-31",
		{From: from, To: to}: "2025-01-01..2025-01-31",
	} {
		if got := r.Identifier(); got != want {
			t.Errorf("%#v.Identifier() = %q, want %q", r, got, want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"202508", "202508", false},
		{"2025-08", "202508", false},
		{"202513", "", true},
		{"2025", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMonth(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMonth(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got.String() != tc.want {
				t.Errorf("ParseMonth(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonth_PreviousAndRange(t *testing.T) {
	m := NewMonth(2025, time.January)
	if got := m.Previous().String(); got != "202412" {
		t.Errorf("Previous() = %v, want 202412", got)
	}
	r := NewMonth(2024, time.February).Range()
	if r.To != New(2024, time.February, 29) {
		t.Errorf("Range().To = %v, want 2024-02-29", r.To)
	}
}
