package wts

import (
	"github.com/etnz/wts/date"
	"github.com/shopspring/decimal"
)

// Aligned is a month where both the sales and the inventories series have a value.
type Aligned struct {
	On          date.Month
	Sales       decimal.Decimal
	Inventories decimal.Decimal
}

// Align inner-joins the sales and inventories series on month.
//
// Months present in only one series are dropped. The result is chronological.
// It returns an *EmptyResultError if the series have no month in common.
func Align(sales, inventories *Series) ([]Aligned, error) {
	var aligned []Aligned
	for on := range date.Intersect(&sales.history, &inventories.history) {
		s, _ := sales.Get(on)
		i, _ := inventories.Get(on)
		aligned = append(aligned, Aligned{On: on, Sales: s, Inventories: i})
	}
	if len(aligned) == 0 {
		return nil, &EmptyResultError{
			Stage:  "alignment",
			Detail: "sales " + sales.Range().String() + " and inventories " + inventories.Range().String() + " have no month in common",
		}
	}
	return aligned, nil
}
