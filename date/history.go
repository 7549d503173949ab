package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific month.
// It ensures that months are unique and the series is always sorted.
type History[T any] struct {
	months []Month
	values []T
}

// search returns the index where on is, or would be inserted, and whether it is present.
func (h *History[T]) search(on Month) (int, bool) {
	return slices.BinarySearchFunc(h.months, on, Month.Compare)
}

// Latest returns the latest month and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (on Month, value T) {
	last := len(h.months) - 1
	if last < 0 {
		return Month{}, *new(T) // return zero value of T
	}
	return h.months[last], h.values[last]
}

// First returns the earliest month and value in the history.
func (h *History[T]) First() (on Month, value T) {
	if len(h.months) == 0 {
		return Month{}, *new(T)
	}
	return h.months[0], h.values[0]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// Append adds a point to the history and reports whether an existing value was replaced.
//
// Existing value at that month is overwritten.
func (h *History[T]) Append(on Month, v T) (replaced bool) {
	i, found := h.search(on)
	if found {
		// We choose to replace, because it will give higher priority to the last data
		h.values[i] = v
		return true
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, v)
	return false
}

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Months returns a copy of the months in the history, in chronological order.
func (h *History[T]) Months() []Month { return slices.Clone(h.months) }

// Get returns the value at 'on' and true or zero value and false.
func (h *History[T]) Get(on Month) (T, bool) {
	if i, found := h.search(on); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// Range returns the first and last months of the history.
// The range is zero if the history is empty.
func (h *History[T]) Range() Range {
	if len(h.months) == 0 {
		return Range{}
	}
	return Range{From: h.months[0], To: h.months[len(h.months)-1]}
}
