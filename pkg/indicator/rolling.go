package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/technicals/pkg/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// nanCount returns the cumulative count of NaN values, where counts[i] is
// the number of NaNs in values[:i]
func nanCount(values []float64) []int {
	counts := make([]int, len(values)+1)
	for i, v := range values {
		counts[i+1] = counts[i]
		if math.IsNaN(v) {
			counts[i+1]++
		}
	}
	return counts
}

// complete reports whether the window ending at i is full and free of NaN
func complete(counts []int, i, window int) bool {
	start := i + 1 - window
	return start >= 0 && counts[i+1]-counts[start] == 0
}

// rolling applies measure to every complete window. Positions with fewer
// than window values of history, or with a NaN inside the window, are NaN.
func rolling(values []float64, window int, measure func([]float64) float64) core.Series[float64] {
	out := core.NaNSeries(len(values))
	counts := nanCount(values)

	for i := window - 1; i < len(values); i++ {
		if !complete(counts, i, window) {
			continue
		}
		out[i] = measure(values[i+1-window : i+1])
	}

	return out
}

// RollingSum calculates the trailing sum over window positions
func RollingSum(values []float64, window int) core.Series[float64] {
	return rolling(values, window, floats.Sum)
}

// RollingMean calculates the trailing arithmetic mean over window positions
func RollingMean(values []float64, window int) core.Series[float64] {
	return rolling(values, window, func(sample []float64) float64 {
		return stat.Mean(sample, nil)
	})
}

// RollingStdDev calculates the trailing sample standard deviation (n-1
// denominator). A window of one value has no sample deviation and yields NaN.
func RollingStdDev(values []float64, window int) core.Series[float64] {
	return rolling(values, window, func(sample []float64) float64 {
		return stat.StdDev(sample, nil)
	})
}

// RollingMax calculates the trailing maximum over window positions
func RollingMax(values []float64, window int) core.Series[float64] {
	return extreme(values, window, talib.Max)
}

// RollingMin calculates the trailing minimum over window positions
func RollingMin(values []float64, window int) core.Series[float64] {
	return extreme(values, window, talib.Min)
}

// extreme runs a ta-lib extreme function and replaces its zero-filled
// lookback and any NaN-bearing window with NaN
func extreme(values []float64, window int, fn func([]float64, int) []float64) core.Series[float64] {
	out := core.NaNSeries(len(values))
	if window > len(values) {
		return out
	}

	// ta-lib refuses periods below 2, a single value is its own extreme
	raw := values
	if window > 1 {
		raw = fn(values, window)
	}

	counts := nanCount(values)
	for i := window - 1; i < len(values); i++ {
		if complete(counts, i, window) {
			out[i] = raw[i]
		}
	}

	return out
}
