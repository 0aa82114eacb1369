package indicator

import "github.com/raykavin/technicals/pkg/core"

// RSI calculates the Relative Strength Index of the open prices for every
// window, using simple rolling means of gains and losses.
//
// The first position has no price change; it counts as neither gain nor loss,
// so RSI{w} is defined from position w-1. When the average loss is zero the
// relative strength is +Inf and RSI is 100; when both averages are zero the
// result is NaN.
func RSI(df *core.Dataframe, windows ...int) (core.Columns, error) {
	set, err := prepare(df, windows)
	if err != nil {
		return nil, err
	}

	gain, loss := gainLoss(df.Open)

	columns := make(core.Columns, len(set))
	for _, window := range set {
		avgGain := RollingMean(gain, window)
		avgLoss := RollingMean(loss, window)

		rsi := make(core.Series[float64], len(avgGain))
		for i := range rsi {
			rs := avgGain[i] / avgLoss[i]
			rsi[i] = 100 - (100 / (1 + rs))
		}
		columns[RSIColumn(window)] = rsi
	}

	return columns, nil
}

// gainLoss splits the price changes into positive gains and positive losses.
// Undefined changes (first position, NaN prices) contribute zero to both.
func gainLoss(values []float64) ([]float64, []float64) {
	gain := make([]float64, len(values))
	loss := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gain[i] = delta
		}
		if delta < 0 {
			loss[i] = -delta
		}
	}

	return gain, loss
}
