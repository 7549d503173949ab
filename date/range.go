package date

import "fmt"

// Range represents an inclusive range of months.
type Range struct{ From, To Month }

// Contains return true if the month is included in the range (boundaries included).
func (r Range) Contains(on Month) bool { return !on.Before(r.From) && !on.After(r.To) }

// IsZero returns true for the zero Range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Len returns the number of calendar months in the range, boundaries included.
func (r Range) Len() int {
	if r.IsZero() || r.To.Before(r.From) {
		return 0
	}
	return (r.To.Year()-r.From.Year())*12 + int(r.To.Month()-r.From.Month()) + 1
}

// String formats the range with report labels, e.g. "January 2010 – December 2020".
func (r Range) String() string {
	if r.IsZero() {
		return "empty"
	}
	if r.From == r.To {
		return r.From.Label()
	}
	return fmt.Sprintf("%s – %s", r.From.Label(), r.To.Label())
}
