package indicator

import "github.com/raykavin/technicals/pkg/core"

// SMA calculates the Simple Moving Average of the open prices for every
// window, one SMA{window} column each
func SMA(df *core.Dataframe, windows ...int) (core.Columns, error) {
	set, err := prepare(df, windows)
	if err != nil {
		return nil, err
	}

	columns := make(core.Columns, len(set))
	for _, window := range set {
		columns[SMAColumn(window)] = RollingMean(df.Open, window)
	}

	return columns, nil
}
