package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

const readMonthFormat = "2006-1" // Permissive read format (allows single-digit month).

// Format is the format used to write a Month: the first day of the month in ISO-8601.
const Format = "2006-01-02"

// LabelFormat is the "January 2006" form used in government reports.
const LabelFormat = "January 2006"

// Month represents a calendar month with no lower than month granularity.
type Month struct {
	y int
	m time.Month
}

// time returns a time.Time that is a canonical representation of the first day of that month (at midnight UTC).
func (d Month) time() time.Time { return time.Date(d.y, d.m, 1, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Month for the given year and month.
// Out of range months are normalized, so New(2020, 13) is January 2021.
func New(year int, month time.Month) Month {
	d := Month{year, month}
	d.y, d.m, _ = d.time().Date()
	return d
}

// Of returns the Month containing t.
func Of(t time.Time) Month { return New(t.Year(), t.Month()) }

// Year returns the year of the month.
func (d Month) Year() int { return d.y }

// Month returns the month of the year.
func (d Month) Month() time.Month { return d.m }

// IsZero returns true if d is the zero value.
func (d Month) IsZero() bool { return d.y == 0 && d.m == 0 }

// AddMonths returns the month n calendar months after d (before if n is negative).
func (d Month) AddMonths(n int) Month { return New(d.y, d.m+time.Month(n)) }

// Before reports whether the month d is before x.
func (d Month) Before(x Month) bool { return d.Compare(x) < 0 }

// After reports whether the month d is after x.
func (d Month) After(x Month) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 depending on d being before, equal or after x.
func (d Month) Compare(x Month) int {
	switch {
	case d.y < x.y, d.y == x.y && d.m < x.m:
		return -1
	case d == x:
		return 0
	default:
		return 1
	}
}

// String formats the month as the date of its first day, e.g. "2021-03-01".
func (d Month) String() string { return d.time().Format(Format) }

// Label formats the month the way reports print it, e.g. "March 2021".
func (d Month) Label() string { return d.time().Format(LabelFormat) }

// Parse parses a Month from a string. It accepts "2021-03-01", "2021-03" and "2021-3".
// The day, when present, must be the first of the month.
func Parse(str string) (Month, error) {
	if on, err := time.Parse(Format, str); err == nil {
		if on.Day() != 1 {
			return Month{}, fmt.Errorf("invalid month %q: day must be the first of the month", str)
		}
		return Of(on), nil
	}
	on, err := time.Parse(readMonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q or %q: %w", str, Format, readMonthFormat, err)
	}
	return Of(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Month {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a month from a json string.
func (j *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Month) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Month pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)

// intersect returns an iterator over the months present in every one of the sorted series.
func intersect(series ...[]Month) iter.Seq[Month] {
	return func(yield func(Month) bool) {
		if len(series) == 0 {
			return
		}
		indexes := make([]int, len(series))
		for {
			// the candidate is the latest of the current heads, every other head must catch up.
			var m Month
			for i, index := range indexes {
				if index >= len(series[i]) {
					// one series is consumed, nothing can be common anymore.
					return
				}
				if on := series[i][index]; i == 0 || on.After(m) {
					m = on
				}
			}
			matched := true
			for i := range indexes {
				for indexes[i] < len(series[i]) && series[i][indexes[i]].Before(m) {
					indexes[i]++
				}
				if indexes[i] >= len(series[i]) {
					return
				}
				if series[i][indexes[i]] != m {
					matched = false
				}
			}
			if !matched {
				continue
			}
			for i := range indexes {
				indexes[i]++
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Intersect returns an iterator over the months present in all histories, in chronological order.
func Intersect[T any](histories ...*History[T]) iter.Seq[Month] {
	months := make([][]Month, 0, len(histories))
	for _, h := range histories {
		months = append(months, h.months)
	}
	return intersect(months...)
}
