package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUGX(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(1_500_000), "UGX 1,500,000"},
		{decimal.NewFromInt(0), "UGX 0"},
		{decimal.NewFromInt(999), "UGX 999"},
		{decimal.RequireFromString("484866.48"), "UGX 484,866"},
		{decimal.RequireFromString("96973.5"), "UGX 96,974"},
		{decimal.NewFromInt(-2500), "UGX -2,500"},
	}
	for _, tt := range tests {
		if got := FormatUGX(tt.in); got != tt.want {
			t.Errorf("FormatUGX(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	for _, in := range []string{"1500000", "1,500,000", "UGX 1,500,000", " ugx 1,500,000 "} {
		got, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) err: %v", in, err)
		}
		if !got.Equal(decimal.NewFromInt(1_500_000)) {
			t.Fatalf("ParseAmount(%q) = %s", in, got)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "UGX", "abc", "1.2.3"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q) err = %v, want ErrInvalidAmount", in, err)
		}
	}
}
