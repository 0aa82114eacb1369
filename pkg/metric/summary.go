// Package metric summarizes indicator columns.
package metric

import (
	"math"
	"sort"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the defined part of an indicator column
type Summary struct {
	Count  int     // Number of positions, warm-up included
	Valid  int     // Number of finite values
	Warmup int     // Leading NaN positions
	Mean   float64 // Mean of the finite values
	StdDev float64 // Sample standard deviation of the finite values
	Min    float64
	Median float64
	Max    float64
	Last   float64 // Last position, NaN when undefined
}

// Summarize computes the statistics of series ignoring NaN and infinite
// values. Statistics of a series without finite values are NaN.
func Summarize(series core.Series[float64]) Summary {
	summary := Summary{
		Count:  len(series),
		Warmup: core.Warmup(series),
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Median: math.NaN(),
		Max:    math.NaN(),
		Last:   math.NaN(),
	}

	if len(series) > 0 {
		summary.Last = series.Last(0)
	}

	data := lo.Filter(series.Values(), func(value float64, _ int) bool {
		return !math.IsNaN(value) && !math.IsInf(value, 0)
	})
	summary.Valid = len(data)
	if len(data) == 0 {
		return summary
	}

	sort.Float64s(data)

	summary.Mean, summary.StdDev = stat.MeanStdDev(data, nil)
	summary.Min = data[0]
	summary.Max = data[len(data)-1]
	summary.Median = stat.Quantile(0.5, stat.LinInterp, data, nil)

	return summary
}

// SummarizeColumns summarizes every column
func SummarizeColumns(columns core.Columns) map[string]Summary {
	return lo.MapValues(columns, func(series core.Series[float64], _ string) Summary {
		return Summarize(series)
	})
}
