// Package money formats and parses Uganda shilling amounts.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencyCode = "UGX"

var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.English)

// FormatUGX renders whole shillings with thousands separators, e.g. "UGX 1,500,000".
// UGX has no minor unit in circulation, so fractions are rounded half away from zero.
func FormatUGX(d decimal.Decimal) string {
	return CurrencyCode + " " + printer.Sprintf("%d", d.Round(0).IntPart())
}

// ParseAmount accepts plain ("1500000"), grouped ("1,500,000") and
// prefixed ("UGX 1,500,000") forms.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(s), CurrencyCode))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d, nil
}
