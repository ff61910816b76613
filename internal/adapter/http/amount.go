package http

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"sacco-lending/pkg/money"
)

// Amount is a request money field. It takes JSON numbers as well as strings in
// the forms tellers type: "1500000", "1,500,000" or "UGX 1,500,000".
type Amount struct{ decimal.Decimal }

func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	d, err := money.ParseAmount(raw)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

func optAmount(a *Amount) *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}
