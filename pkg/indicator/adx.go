package indicator

import (
	"math"

	"github.com/raykavin/technicals/pkg/core"
)

// ADX calculates the Average Directional Index for every window.
// Each window produces ADX{w}, DI+{w} and DI-{w} columns.
//
// Directional indicators are plain rolling sums (not Wilder smoothing) of the
// directional movement over the rolling sum of the true range, and ADX is the
// rolling mean of the directional index over the same window. The true range
// of the first bar is undefined, so DI is defined from position w and ADX
// from position 2w-1. Divisions by zero are left to IEEE semantics.
func ADX(df *core.Dataframe, windows ...int) (core.Columns, error) {
	set, err := prepare(df, windows)
	if err != nil {
		return nil, err
	}

	tr := TrueRange(df.High, df.Low, df.Close)
	plusDM, minusDM := DirectionalMovement(df.High, df.Low)

	columns := make(core.Columns, len(set)*3)
	for _, window := range set {
		trSum := RollingSum(tr, window)
		plusSum := RollingSum(plusDM, window)
		minusSum := RollingSum(minusDM, window)

		size := len(trSum)
		diPlus := make(core.Series[float64], size)
		diMinus := make(core.Series[float64], size)
		dx := make([]float64, size)
		for i := 0; i < size; i++ {
			diPlus[i] = (plusSum[i] / trSum[i]) * 100
			diMinus[i] = (minusSum[i] / trSum[i]) * 100
			dx[i] = (math.Abs(diPlus[i]-diMinus[i]) / (diPlus[i] + diMinus[i])) * 100
		}

		columns[DIPlusColumn(window)] = diPlus
		columns[DIMinusColumn(window)] = diMinus
		columns[ADXColumn(window)] = RollingMean(dx, window)
	}

	return columns, nil
}

// TrueRange calculates max(high-low, |high-prevClose|, |low-prevClose|).
// The first position has no previous close and is NaN.
func TrueRange(high, low, close []float64) core.Series[float64] {
	tr := core.NaNSeries(len(close))
	for i := 1; i < len(close); i++ {
		tr[i] = math.Max(high[i]-low[i],
			math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))
	}
	return tr
}

// DirectionalMovement calculates +DM and -DM. A move counts only when it is
// strictly larger than the opposite move, so equal moves give zero for both.
// The first position has no previous bar and is zero.
func DirectionalMovement(high, low []float64) (core.Series[float64], core.Series[float64]) {
	plus := make(core.Series[float64], len(high))
	minus := make(core.Series[float64], len(high))

	for i := 1; i < len(high); i++ {
		up := high[i] - high[i-1]
		down := -(low[i] - low[i-1])

		if up > down {
			plus[i] = up
		}
		if down > up {
			minus[i] = down
		}
	}

	return plus, minus
}
