package timeline

import (
	"iter"
	"slices"
)

// Series stores a chronological sequence of values, each bound to an
// instant. Instants are unique and the sequence is always sorted; setting
// a value at an instant already present overwrites it instead of
// duplicating the entry.
type Series[T any] struct {
	times  []Time
	values []T
}

// Len returns the number of points in the series.
func (s *Series[T]) Len() int { return len(s.times) }

// Clear removes every point from the series.
func (s *Series[T]) Clear() {
	s.times = s.times[:0]
	s.values = s.values[:0]
}

// search returns the index of at and whether the instant is present.
// When absent, the index is the sorted insertion point.
func (s *Series[T]) search(at Time) (int, bool) {
	return slices.BinarySearchFunc(s.times, at, func(a, b Time) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	})
}

// Set records a value at the given instant. An existing value at that
// exact instant is overwritten; otherwise the point is inserted at its
// chronological position. Appending in increasing time order is O(1)
// amortized, out-of-order backfill pays the insertion cost.
func (s *Series[T]) Set(at Time, v T) *Series[T] {
	i, found := s.search(at)
	if found {
		s.values[i] = v
		return s
	}
	s.times = slices.Insert(s.times, i, at)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value recorded exactly at the given instant.
func (s *Series[T]) Get(at Time) (T, bool) {
	if i, found := s.search(at); found {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// AsOf returns the value at the given instant, or the most recent value
// before it. The second result is false when the series has no point at
// or before the instant.
func (s *Series[T]) AsOf(at Time) (T, bool) {
	i, found := s.search(at)
	if found {
		return s.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return s.values[i-1], true
}

// Latest returns the most recent point of the series.
// If the series is empty it returns zero values and false.
func (s *Series[T]) Latest() (Time, T, bool) {
	last := len(s.times) - 1
	if last < 0 {
		var zero T
		return 0, zero, false
	}
	return s.times[last], s.values[last], true
}

// First returns the oldest point of the series.
func (s *Series[T]) First() (Time, T, bool) {
	if len(s.times) == 0 {
		var zero T
		return 0, zero, false
	}
	return s.times[0], s.values[0], true
}

// All returns an iterator over every point in chronological order.
func (s *Series[T]) All() iter.Seq2[Time, T] {
	return func(yield func(Time, T) bool) {
		for i, at := range s.times {
			if !yield(at, s.values[i]) {
				return
			}
		}
	}
}
