package wts

import (
	"github.com/etnz/wts/date"
	"github.com/shopspring/decimal"
)

// YearOverYearLag is the calendar distance used for year-over-year growth.
const YearOverYearLag = 12

var hundred = decimal.NewFromInt(100)

// Metric is an aligned month with its derived indicators.
//
// Ratio is invalid when sales are zero. Growth is invalid when there is no
// aligned month exactly one year earlier, or when that month had zero sales.
type Metric struct {
	Aligned
	Ratio  decimal.NullDecimal // Inventories / Sales
	Growth decimal.NullDecimal // Year-over-year sales growth in percent.
}

// ComputeMetrics derives the inventory-to-sales ratio and the year-over-year
// sales growth for every aligned month.
//
// The prior-year month is looked up by calendar, so a month missing from the
// aligned sequence never shifts the growth of the following months.
func ComputeMetrics(aligned []Aligned) ([]Metric, error) {
	if len(aligned) == 0 {
		return nil, &EmptyResultError{Stage: "metrics computation", Detail: "no aligned month"}
	}

	var sales date.History[decimal.Decimal]
	metrics := make([]Metric, 0, len(aligned))
	for _, a := range aligned {
		m := Metric{Aligned: a}
		if !a.Sales.IsZero() {
			m.Ratio = decimal.NewNullDecimal(a.Inventories.Div(a.Sales))
		}
		if prev, ok := sales.Get(a.On.AddMonths(-YearOverYearLag)); ok && !prev.IsZero() {
			m.Growth = decimal.NewNullDecimal(a.Sales.Sub(prev).Div(prev).Mul(hundred))
		}
		sales.Append(a.On, a.Sales)
		metrics = append(metrics, m)
	}
	return metrics, nil
}
