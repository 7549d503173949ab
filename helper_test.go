package wts

import (
	"testing"

	"github.com/etnz/wts/date"
	"github.com/shopspring/decimal"
)

// monthly returns a series starting at 'from' with one value per consecutive month.
func monthly(name string, from date.Month, values ...int64) *Series {
	s := NewSeries(name)
	for i, v := range values {
		s.Set(from.AddMonths(i), decimal.NewFromInt(v))
	}
	return s
}

// repeat returns n copies of v.
func repeat(v int64, n int) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

// assertChronological fails if metrics are not strictly ascending by month.
func assertChronological(t *testing.T, metrics []Metric) {
	t.Helper()
	for i := 1; i < len(metrics); i++ {
		if !metrics[i-1].On.Before(metrics[i].On) {
			t.Errorf("metrics[%d].On = %v is not before metrics[%d].On = %v", i-1, metrics[i-1].On, i, metrics[i].On)
		}
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }
