package wts

import (
	"github.com/etnz/wts/date"
	"github.com/shopspring/decimal"
)

// RecentMonths is the number of trailing months detailed in a Summary.
const RecentMonths = 12

// Extremum is a ratio value and the month it was reached.
type Extremum struct {
	On    date.Month
	Ratio decimal.Decimal
}

// Summary provides an at-a-glance overview of the merged dataset.
type Summary struct {
	Columns Columns
	Period  date.Range
	Records int

	// Ratio statistics, over the months where the ratio is defined.
	RatioMonths  int
	AverageRatio decimal.NullDecimal
	MinRatio     Extremum
	MaxRatio     Extremum

	Latest       Metric
	LatestGrowth Metric // Latest month with a defined growth, zero if none.

	// NegativeGrowth counts the recent months with a year-over-year sales decline.
	NegativeGrowth int
	Recent         []Metric
}

// Summarize computes the Summary of chronological metrics.
func Summarize(cols Columns, metrics []Metric) (*Summary, error) {
	if len(metrics) == 0 {
		return nil, &EmptyResultError{Stage: "summary", Detail: "no metric record"}
	}
	s := &Summary{
		Columns: cols,
		Period:  date.Range{From: metrics[0].On, To: metrics[len(metrics)-1].On},
		Records: len(metrics),
		Latest:  metrics[len(metrics)-1],
	}

	total := decimal.Zero
	for _, m := range metrics {
		if m.Growth.Valid {
			s.LatestGrowth = m
		}
		if !m.Ratio.Valid {
			continue
		}
		r := m.Ratio.Decimal
		if s.RatioMonths == 0 || r.LessThan(s.MinRatio.Ratio) {
			s.MinRatio = Extremum{On: m.On, Ratio: r}
		}
		if s.RatioMonths == 0 || r.GreaterThan(s.MaxRatio.Ratio) {
			s.MaxRatio = Extremum{On: m.On, Ratio: r}
		}
		total = total.Add(r)
		s.RatioMonths++
	}
	if s.RatioMonths > 0 {
		s.AverageRatio = decimal.NewNullDecimal(total.Div(decimal.NewFromInt(int64(s.RatioMonths))))
	}

	recent := date.Range{From: s.Period.To.AddMonths(1 - RecentMonths), To: s.Period.To}
	for _, m := range metrics {
		if !recent.Contains(m.On) {
			continue
		}
		s.Recent = append(s.Recent, m)
		if m.Growth.Valid && m.Growth.Decimal.IsNegative() {
			s.NegativeGrowth++
		}
	}
	return s, nil
}
