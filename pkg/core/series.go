package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Series is a time series of ordered values
// It provides methods for analyzing time series data
type Series[T constraints.Ordered] []T

// NewSeries returns a series of the given size filled with value
func NewSeries[T constraints.Ordered](size int, value T) Series[T] {
	s := make(Series[T], size)
	for i := range s {
		s[i] = value
	}
	return s
}

// NaNSeries returns a float series of the given size where every position is undefined
func NaNSeries(size int) Series[float64] {
	return NewSeries(size, math.NaN())
}

// Values returns the underlying slice of values
func (s Series[T]) Values() []T {
	return s
}

// Last returns the value at a specified position from the end
// position 0 is the last value, 1 is the second-to-last, etc.
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns a slice with the last 'size' values
// If size exceeds the length, returns the entire series
func (s Series[T]) LastValues(size int) Series[T] {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Clone returns a copy of the series that shares no memory with s
func (s Series[T]) Clone() Series[T] {
	if s == nil {
		return nil
	}
	out := make(Series[T], len(s))
	copy(out, s)
	return out
}

// Warmup returns how many leading positions of a float series are NaN
func Warmup(s Series[float64]) int {
	for i, v := range s {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(s)
}
