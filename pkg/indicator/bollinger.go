package indicator

import "github.com/raykavin/technicals/pkg/core"

// BollingerBands calculates Bollinger Bands over the close prices.
// Returns the middle, upper, and lower bands as named columns; the bands are
// the rolling mean plus/minus deviation times the rolling sample standard
// deviation.
func BollingerBands(df *core.Dataframe, window int, deviation float64) (core.Columns, error) {
	if _, err := prepare(df, []int{window}); err != nil {
		return nil, err
	}

	middle := RollingMean(df.Close, window)
	std := RollingStdDev(df.Close, window)

	upper := make(core.Series[float64], len(middle))
	lower := make(core.Series[float64], len(middle))
	for i := range middle {
		upper[i] = middle[i] + (std[i] * deviation)
		lower[i] = middle[i] - (std[i] * deviation)
	}

	return core.Columns{
		ColumnBollingerMiddle: middle,
		ColumnBollingerUpper:  upper,
		ColumnBollingerLower:  lower,
	}, nil
}
