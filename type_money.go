package wts

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportCurrency is the currency of the census wholesale reports.
const ReportCurrency = money.USD

// Millions is a monetary level expressed in millions of dollars, the unit of the census reports.
type Millions struct {
	value decimal.Decimal
}

// M returns the Millions for a report value.
func M(value decimal.Decimal) Millions { return Millions{value: value} }

// currency returns the report currency.
func (m Millions) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, ReportCurrency).Currency()
}

// String formats the level with the currency formatter, e.g. "$689,123.00M".
func (m Millions) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart()) + "M"
}

func (m Millions) Decimal() decimal.Decimal { return m.value }
func (m Millions) IsZero() bool             { return m.value.IsZero() }
