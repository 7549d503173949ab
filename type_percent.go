package wts

import "github.com/shopspring/decimal"

// Percent is a possibly undefined percentage, like a year-over-year growth.
type Percent decimal.NullDecimal

// P returns the Percent of a nullable decimal.
func P(d decimal.NullDecimal) Percent { return Percent(d) }

func (p Percent) Equal(q Percent) bool {
	if !p.Valid || !q.Valid {
		return p.Valid == q.Valid
	}
	// it has to be compared with some precision
	precision := decimal.New(1, -4)
	return p.Decimal.Sub(q.Decimal).Abs().LessThan(precision)
}

// String formats the percent with two decimals, or "-" if undefined.
func (p Percent) String() string {
	if !p.Valid {
		return "-"
	}
	return p.Decimal.StringFixed(2) + "%"
}

// SignedString is like String but always print the sign.
func (p Percent) SignedString() string {
	if !p.Valid {
		return "-"
	}
	res := p.Decimal.StringFixed(2)
	if !p.Decimal.IsNegative() {
		res = "+" + res
	}
	return res + "%"
}
