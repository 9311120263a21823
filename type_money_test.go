package offshore

import "testing"

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		m     Money
		str   string
		whole string
	}{
		{BRL(1234.56), "R$1.234,56", "R$1.235"},
		{BRL(0), "R$0,00", "R$0"},
		{M(1500000, "USD"), "$1,500,000.00", "$1,500,000"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.str {
			t.Errorf("String() = %q, want %q", got, tc.str)
		}
		if got := tc.m.Whole(); got != tc.whole {
			t.Errorf("Whole() = %q, want %q", got, tc.whole)
		}
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		part, total Money
		want        Percent
	}{
		{BRL(1), BRL(3), 33.33},
		{BRL(2), BRL(3), 66.67},
		{BRL(5), BRL(0), 0},
		{BRL(5), BRL(-10), 0},
	}
	for _, tc := range tests {
		if got := Share(tc.part, tc.total); !got.Equal(tc.want) {
			t.Errorf("Share(%v, %v) = %v, want %v", tc.part, tc.total, got, tc.want)
		}
	}
}
