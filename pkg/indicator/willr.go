package indicator

import "github.com/raykavin/technicals/pkg/core"

// WillR calculates Williams %R for every window:
// -100 * (highestHigh - close) / (highestHigh - lowestLow).
// A flat window (highestHigh == lowestLow) divides by zero and yields NaN or
// an infinity.
func WillR(df *core.Dataframe, windows ...int) (core.Columns, error) {
	set, err := prepare(df, windows)
	if err != nil {
		return nil, err
	}

	columns := make(core.Columns, len(set))
	for _, window := range set {
		highest := RollingMax(df.High, window)
		lowest := RollingMin(df.Low, window)

		wr := make(core.Series[float64], len(highest))
		for i := range wr {
			wr[i] = ((highest[i] - df.Close[i]) / (highest[i] - lowest[i])) * -100
		}
		columns[WRColumn(window)] = wr
	}

	return columns, nil
}
