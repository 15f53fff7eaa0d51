package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"80", "80", true},
		{"1.0", "1", true},
		{"12.50", "12.5", true},
		{" 2.5 ", "2.5", true},
		{"0", "0", true},
		{"-3", "-3", true},
		{"1e3", "1000", true},
		{"12345678901234567890.123456789012", "12345678901234567890.123456789012", true},
		{"1e31", "10000000000000000000000000000000", true},
		{"1e32", "", false},
		{"1e5000000", "", false},
		{"1e-5000000", "", false},
		{"1e400000000", "", false},
		{strings.Repeat("9", 33), "", false},
		{"abc", "", false},
		{"12,50", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(80), "$80"},
		{decimal.RequireFromString("12.50"), "$12.5"},
		{decimal.RequireFromString("0.1"), "$0.1"},
		{decimal.NewFromInt(-4), "$-4"},
	}
	for _, tc := range cases {
		if got := FormatAmount("$", tc.amount); got != tc.want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestParseAmountTooLarge(t *testing.T) {
	for _, in := range []string{"1e5000000", "0.1e-40", strings.Repeat("1", 40)} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrAmountTooLarge) {
			t.Errorf("%q: err = %v, want ErrAmountTooLarge", in, err)
		}
	}
}
