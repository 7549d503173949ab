package wts

import (
	"iter"

	"github.com/etnz/wts/date"
	"github.com/shopspring/decimal"
)

// Observation is a single monthly value of a Series.
type Observation struct {
	On    date.Month
	Value decimal.Decimal
}

// Series is a named monthly time series, unique by month and sorted chronologically.
type Series struct {
	Name    string
	history date.History[decimal.Decimal]
}

// NewSeries returns an empty series.
func NewSeries(name string) *Series { return &Series{Name: name} }

// Set records the value for a month and reports whether a previous value was replaced.
func (s *Series) Set(on date.Month, value decimal.Decimal) (replaced bool) {
	return s.history.Append(on, value)
}

// Get returns the value at 'on' and true, or zero and false.
func (s *Series) Get(on date.Month) (decimal.Decimal, bool) { return s.history.Get(on) }

// Len returns the number of months in the series.
func (s *Series) Len() int { return s.history.Len() }

// Range returns the months covered by the series.
func (s *Series) Range() date.Range { return s.history.Range() }

// Values iterates over the series in chronological order.
func (s *Series) Values() iter.Seq2[date.Month, decimal.Decimal] { return s.history.Values() }

// Observations returns the series as a chronological slice.
func (s *Series) Observations() []Observation {
	obs := make([]Observation, 0, s.Len())
	for on, v := range s.Values() {
		obs = append(obs, Observation{On: on, Value: v})
	}
	return obs
}
