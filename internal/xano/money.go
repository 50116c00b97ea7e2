package xano

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in whole currency units (CLP has no minor unit).
// It travels as a bare JSON number.
type Money struct {
	decimal.Decimal
}

func NewMoney(units int64) Money { return Money{decimal.NewFromInt(units)} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Money{}
		return nil
	}
	return m.Decimal.UnmarshalJSON(b)
}

func (m Money) Mul(n int64) Money { return Money{m.Decimal.Mul(decimal.NewFromInt(n))} }

func (m Money) Add(o Money) Money { return Money{m.Decimal.Add(o.Decimal)} }

// CLP renders the amount the way es-CL formats pesos: "$12.990".
func (m Money) CLP() string {
	digits := m.Decimal.Round(0).StringFixed(0)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-$" + sb.String()
	}
	return "$" + sb.String()
}
